package usecase

import (
	"context"
	"sort"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/pkg/geo"
)

// DefaultSearchRadiusMeters bounds supplier search when no radius is given.
const DefaultSearchRadiusMeters = 50000

// NearbySupplier pairs a supplier with its distance from the query point.
type NearbySupplier struct {
	Supplier model.User
	Distance float64
}

// SearchUseCase finds suppliers around a vendor's coordinates.
type SearchUseCase struct {
	users repository.UserRepository
}

// NewSearchUseCase constructs SearchUseCase.
func NewSearchUseCase(users repository.UserRepository) *SearchUseCase {
	return &SearchUseCase{users: users}
}

// NearbySuppliers returns suppliers whose stored location lies within
// maxDistance meters of the query point, nearest first. A supplier exactly
// at the boundary is included.
func (u *SearchUseCase) NearbySuppliers(ctx context.Context, longitude, latitude, maxDistance float64) ([]NearbySupplier, error) {
	if !geo.Valid(longitude, latitude) {
		return nil, domainErrors.ErrInvalidCoordinates
	}
	if maxDistance <= 0 {
		maxDistance = DefaultSearchRadiusMeters
	}

	suppliers, err := u.users.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]NearbySupplier, 0, len(suppliers))
	for _, s := range suppliers {
		d := geo.Distance(longitude, latitude, s.Location.Longitude, s.Location.Latitude)
		if d <= maxDistance {
			result = append(result, NearbySupplier{Supplier: s, Distance: d})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	return result, nil
}
