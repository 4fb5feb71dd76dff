// Package permissions contains guest permission matrix and device command authorizer.
package permissions

import (
	"sort"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/gobwas/glob"
)

// Matrix maps booking identifier -> category -> controllable entities.
// Immutable after construction.
type Matrix struct {
	bookings map[string]map[Category]map[string]bool
	ordered  map[string]map[Category][]string
}

// ConstructMatrix has data required for a new matrix.
type ConstructMatrix struct {
	Logger   common.ILoggerProvider
	Settings *providers.PermissionSettings
}

// NewMatrix bakes raw permission settings.
// Unknown categories and entities outside of the category domain are skipped.
func NewMatrix(ctor *ConstructMatrix) *Matrix {
	m := &Matrix{
		bookings: make(map[string]map[Category]map[string]bool),
		ordered:  make(map[string]map[Category][]string),
	}

	if nil == ctor.Settings {
		return m
	}

	domains := make(map[Category]glob.Glob, len(categoryDomains))
	for k, v := range categoryDomains {
		domains[k] = glob.MustCompile(v)
	}

	for booking, categories := range ctor.Settings.Bookings {
		for rawCategory, entities := range categories {
			category := Category(rawCategory)
			domain, ok := domains[category]
			if !ok {
				ctor.Logger.Warn("Skipping unknown permission category",
					common.LogBookingToken, booking, common.LogCategoryToken, rawCategory)
				continue
			}

			for _, e := range entities {
				if !domain.Match(e) {
					ctor.Logger.Warn("Skipping entity outside of category domain",
						common.LogBookingToken, booking, common.LogCategoryToken, rawCategory,
						common.LogEntityToken, e)
					continue
				}

				m.add(booking, category, e, ctor.Logger)
			}
		}
	}

	for _, categories := range m.ordered {
		for _, v := range categories {
			sort.Strings(v)
		}
	}

	return m
}

// Authorize checks whether booking may control the entity within category.
func (m *Matrix) Authorize(bookingID string, category string, entity string) bool {
	categories, ok := m.bookings[bookingID]
	if !ok {
		return false
	}

	entities, ok := categories[Category(category)]
	if !ok {
		return false
	}

	return entities[entity]
}

// Entities returns sorted controllable entities of the booking's category.
func (m *Matrix) Entities(bookingID string, category string) []string {
	categories, ok := m.ordered[bookingID]
	if !ok {
		return []string{}
	}

	return append([]string{}, categories[Category(category)]...)
}

// Bookings returns number of bookings with permissions.
func (m *Matrix) Bookings() int {
	return len(m.bookings)
}

func (m *Matrix) add(booking string, category Category, entity string, logger common.ILoggerProvider) {
	if _, ok := m.bookings[booking]; !ok {
		m.bookings[booking] = make(map[Category]map[string]bool)
		m.ordered[booking] = make(map[Category][]string)
	}

	if _, ok := m.bookings[booking][category]; !ok {
		m.bookings[booking][category] = make(map[string]bool)
	}

	if m.bookings[booking][category][entity] {
		logger.Warn("Ignoring duplicated entity", common.LogBookingToken, booking,
			common.LogCategoryToken, string(category), common.LogEntityToken, entity)
		return
	}

	m.bookings[booking][category][entity] = true
	m.ordered[booking][category] = append(m.ordered[booking][category], entity)
}
