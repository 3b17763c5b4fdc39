package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/platform/docstore"
)

const (
	usersCollection    = "users"
	registryCollection = "signedUser"
	userDataCollection = "userData"
)

type MemberRepository interface {
	FindByID(ctx context.Context, id string) (*model.Member, error)
	// UpsertProfile merges the identity provider's profile fields into the
	// member document, creating it on first login.
	UpsertProfile(ctx context.Context, member model.Member) error
	// Handle returns the member's tracking-site handle, or "" when the
	// member has none on record.
	Handle(ctx context.Context, id string) (string, error)
	// FindRegistryByEmail looks the member up in the operator-maintained
	// registry.
	FindRegistryByEmail(ctx context.Context, email string) (*model.RegistryRecord, error)
	// Penalties reads the whole penalty table. The collection is small
	// (club membership), so no pagination is applied.
	Penalties(ctx context.Context) ([]model.PenaltyRecord, error)
}

type docMemberRepository struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewMemberRepository(store docstore.Store, logger *slog.Logger) MemberRepository {
	return &docMemberRepository{store: store, logger: logger}
}

func (r *docMemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	snap, err := r.store.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		r.logger.Error("member lookup failed", "id", id, "error", err)
		return nil, fmt.Errorf("memberRepository.FindByID: %w", err)
	}

	member := &model.Member{}
	if err := snap.DataTo(member); err != nil {
		return nil, fmt.Errorf("memberRepository.FindByID decode: %w", err)
	}
	member.ID = snap.ID()
	return member, nil
}

func (r *docMemberRepository) UpsertProfile(ctx context.Context, member model.Member) error {
	if member.ID == "" {
		return common.ErrBadRequest
	}

	err := r.store.Collection(usersCollection).Doc(member.ID).Set(ctx, map[string]interface{}{
		"email":     member.Email,
		"name":      member.Name,
		"photoURL":  member.PhotoURL,
		"updatedAt": docstore.ServerTimestamp,
	}, true)
	if err != nil {
		r.logger.Error("member upsert failed", "id", member.ID, "error", err)
		return fmt.Errorf("memberRepository.UpsertProfile: %w", err)
	}
	return nil
}

func (r *docMemberRepository) Handle(ctx context.Context, id string) (string, error) {
	snap, err := r.store.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil
		}
		r.logger.Error("member handle lookup failed", "id", id, "error", err)
		return "", fmt.Errorf("memberRepository.Handle: %w", err)
	}

	handle, _ := snap.Data()["boj_id"].(string)
	return handle, nil
}

func (r *docMemberRepository) FindRegistryByEmail(ctx context.Context, email string) (*model.RegistryRecord, error) {
	snaps, err := r.store.Collection(registryCollection).
		Where("email", "==", email).
		Limit(1).
		GetAll(ctx)
	if err != nil {
		r.logger.Error("registry query failed", "error", err)
		return nil, fmt.Errorf("memberRepository.FindRegistryByEmail: %w", err)
	}
	if len(snaps) == 0 {
		return nil, common.ErrNotFound
	}

	record := &model.RegistryRecord{}
	if err := snaps[0].DataTo(record); err != nil {
		return nil, fmt.Errorf("memberRepository.FindRegistryByEmail decode: %w", err)
	}
	return record, nil
}

func (r *docMemberRepository) Penalties(ctx context.Context) ([]model.PenaltyRecord, error) {
	snaps, err := r.store.Collection(userDataCollection).GetAll(ctx)
	if err != nil {
		r.logger.Error("penalty query failed", "error", err)
		return nil, fmt.Errorf("memberRepository.Penalties: %w", err)
	}

	records := make([]model.PenaltyRecord, 0, len(snaps))
	for _, snap := range snaps {
		var rec model.PenaltyRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("memberRepository.Penalties decode %s: %w", snap.ID(), err)
		}
		records = append(records, rec)
	}
	return records, nil
}
