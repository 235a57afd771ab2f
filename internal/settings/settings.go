// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package settings persists the few visitor preferences that outlive a session.

Two keys are stored per visitor: the chosen sort order and whether the
consent notice was acknowledged. Backends are interchangeable behind
[Repository]: Redis, PostgreSQL or process memory.

Reads never fail the caller. A missing or unreadable value resolves to the
default and the storage error is logged, so a settings outage degrades to
default behavior instead of blocking the catalog.
*/
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/dexview/internal/catalog"
	"github.com/taibuivan/dexview/internal/platform/constants"
	"github.com/taibuivan/dexview/pkg/convert"
)

// consentGiven is the stored value of an acknowledged consent notice.
const consentGiven = "true"

// Service reads and writes durable visitor settings.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService creates a settings [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
SortOrder returns the visitor's stored sort key.

Description: Falls back to [catalog.DefaultSort] when nothing is stored,
the stored key is no longer valid, or the backend fails.
*/
func (service *Service) SortOrder(context context.Context, visitorID string) catalog.SortKey {
	value, err := service.repository.Get(context, visitorID, constants.SettingSortOrder)
	if err != nil {
		service.logReadFailure(context, constants.SettingSortOrder, err)
		return catalog.DefaultSort
	}

	key := catalog.SortKey(value)
	if !key.Valid() {
		service.logger.WarnContext(context, "setting_value_invalid",
			slog.String("key", constants.SettingSortOrder),
			slog.String("value", value),
		)
		return catalog.DefaultSort
	}

	return key
}

/*
SetSortOrder stores the visitor's sort key.

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) SetSortOrder(context context.Context, visitorID string, key catalog.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("settings: invalid sort order %q", key)
	}

	if err := service.repository.Set(context, visitorID, constants.SettingSortOrder, string(key)); err != nil {
		return fmt.Errorf("settings: failed to store sort order: %w", err)
	}

	return nil
}

// ConsentGiven reports whether the visitor acknowledged the consent notice.
func (service *Service) ConsentGiven(context context.Context, visitorID string) bool {
	value, err := service.repository.Get(context, visitorID, constants.SettingCookieConsent)
	if err != nil {
		service.logReadFailure(context, constants.SettingCookieConsent, err)
		return false
	}
	return convert.ToBool(value)
}

// AcknowledgeConsent records that the visitor dismissed the consent notice.
func (service *Service) AcknowledgeConsent(context context.Context, visitorID string) error {
	if err := service.repository.Set(context, visitorID, constants.SettingCookieConsent, consentGiven); err != nil {
		return fmt.Errorf("settings: failed to store consent: %w", err)
	}
	return nil
}

func (service *Service) logReadFailure(context context.Context, key string, err error) {
	if errors.Is(err, ErrNotFound) {
		return
	}
	service.logger.WarnContext(context, "setting_read_failed",
		slog.String("key", key),
		slog.Any("error", err),
	)
}
