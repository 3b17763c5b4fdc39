package api

import (
	"net/http"
	"time"

	"algoclub/internal/api/handler"
	"algoclub/internal/app/service"
	"algoclub/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	boardService *service.BoardService,
	rankingService *service.RankingService,
	penaltyService *service.PenaltyService,
	memberService *service.MemberService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts its claims in context;
	// per-route authenticators decide whether one is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(v1)

		questionHandler := handler.NewQuestionHandler(boardService)
		v1.Route("/questions", questionHandler.RegisterRoutes)

		commentHandler := handler.NewCommentHandler(boardService)
		v1.Route("/comments", commentHandler.RegisterRoutes)

		rankingHandler := handler.NewRankingHandler(rankingService)
		v1.Route("/rankings", rankingHandler.RegisterRoutes)

		penaltyHandler := handler.NewPenaltyHandler(penaltyService)
		v1.Route("/penalties", penaltyHandler.RegisterRoutes)

		memberHandler := handler.NewMemberHandler(memberService)
		v1.Route("/members", memberHandler.RegisterRoutes)
	})

	return r
}
