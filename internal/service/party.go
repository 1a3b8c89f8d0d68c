package service

import (
	"context"
	"log/slog"

	"github.com/cadastra/cadastra/internal/cache"
	"github.com/cadastra/cadastra/internal/metrics"
	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
	"github.com/cadastra/cadastra/internal/validation"
)

// PartyService manages registered party records. The cache is optional;
// when nil every read goes to the store.
type PartyService struct {
	parties store.PartyStore
	cache   *cache.Cache
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewPartyService creates a PartyService.
func NewPartyService(parties store.PartyStore, c *cache.Cache, recorder metrics.Recorder, logger *slog.Logger) *PartyService {
	return &PartyService{parties: parties, cache: c, metrics: recorder, logger: logger}
}

// CreateParty normalizes and validates the payload, then stores the party.
func (s *PartyService) CreateParty(ctx context.Context, in validation.PartyInput) (*model.Party, error) {
	in, err := validation.Party(in)
	if err != nil {
		s.metrics.IncValidationFailure("party")
		return nil, err
	}

	party, err := s.parties.Create(ctx, &model.Party{
		Kind:     model.PartyKind(in.Kind),
		Name:     in.Name,
		Document: in.Document,
		Email:    in.Email,
		Phone:    in.Phone,
		Address: model.Address{
			PostalCode: in.Address.PostalCode,
			Street:     in.Address.Street,
			Number:     in.Address.Number,
			Complement: in.Address.Complement,
			District:   in.Address.District,
			City:       in.Address.City,
			State:      in.Address.State,
		},
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncPartyCreated()
	return party, nil
}

// GetParty returns one party, reading through the cache when available.
func (s *PartyService) GetParty(ctx context.Context, id string) (*model.Party, error) {
	if s.cache != nil {
		if cached, _ := s.cache.GetParty(ctx, id); cached != nil {
			s.metrics.IncPartyCacheHit()
			return cached, nil
		}
		s.metrics.IncPartyCacheMiss()
	}

	party, err := s.parties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetParty(ctx, party); err != nil {
			s.logger.Warn("failed to cache party", "party_id", id, "error", err)
		}
	}
	return party, nil
}

// ListParties returns parties matching the filter, capped by the store.
func (s *PartyService) ListParties(ctx context.Context, filter store.PartyFilter) ([]*model.Party, error) {
	return s.parties.List(ctx, filter)
}

// UpdateParty applies a partial update. The document cardinality is checked
// against the effective kind, merging the patch over the stored record, so
// a mismatched document can never become stored state.
func (s *PartyService) UpdateParty(ctx context.Context, id string, in validation.PartyPatchInput) (*model.Party, error) {
	in, err := validation.PartyPatch(in)
	if err != nil {
		s.metrics.IncValidationFailure("party")
		return nil, err
	}

	existing, err := s.parties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kind := existing.Kind
	if in.Kind != nil {
		kind = model.PartyKind(*in.Kind)
	}
	document := existing.Document
	if in.Document != nil {
		document = *in.Document
	}
	if issue := validation.CheckDocument(kind, document); issue != nil {
		s.metrics.IncValidationFailure("party")
		return nil, &validation.Error{Issues: validation.Issues{"document": {*issue}}}
	}

	patch := store.PartyPatch{
		Name:     in.Name,
		Document: in.Document,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if in.Kind != nil {
		k := model.PartyKind(*in.Kind)
		patch.Kind = &k
	}
	if in.Address != nil {
		patch.Address = &model.Address{
			PostalCode: in.Address.PostalCode,
			Street:     in.Address.Street,
			Number:     in.Address.Number,
			Complement: in.Address.Complement,
			District:   in.Address.District,
			City:       in.Address.City,
			State:      in.Address.State,
		}
	}

	party, err := s.parties.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateParty(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate party cache", "party_id", id, "error", err)
		}
	}
	s.metrics.IncPartyUpdated()
	return party, nil
}

// DeleteParty removes a party and drops it from the cache.
func (s *PartyService) DeleteParty(ctx context.Context, id string) error {
	if err := s.parties.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateParty(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate party cache", "party_id", id, "error", err)
		}
	}
	s.metrics.IncPartyDeleted()
	return nil
}
