package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/pkg/models"
)

// Package identifiers
const (
	PackageBasic        = "basic"
	PackageProfessional = "professional"
	PackageUnlimited    = "unlimited"
)

// packages is the static purchase table. The unlimited tier grants the
// premium flag; it deliberately does not credit a sentinel seconds
// balance, since premium accounts skip balance checks entirely.
var packages = map[string]models.Package{
	PackageBasic: {
		ID:             PackageBasic,
		Name:           "Starter",
		Price:          decimal.NewFromInt(5),
		SecondsAwarded: 300,
		Description:    "300 seconds of 720p generation",
	},
	PackageProfessional: {
		ID:             PackageProfessional,
		Name:           "Professional",
		Price:          decimal.NewFromInt(39),
		SecondsAwarded: 2000,
		Description:    "2000 seconds of 1080p generation, no watermark",
	},
	PackageUnlimited: {
		ID:             PackageUnlimited,
		Name:           "Unlimited",
		Price:          decimal.NewFromInt(99),
		SecondsAwarded: 0,
		GrantsPremium:  true,
		Description:    "unlimited generation, 1080p, no watermark, priority queue",
	},
}

// LookupPackage resolves a package id to its definition.
func LookupPackage(id string) (models.Package, error) {
	pkg, ok := packages[id]
	if !ok {
		return models.Package{}, apperror.New(apperror.InvalidPackage, "unknown package %q", id)
	}
	return pkg, nil
}

// ListPackages returns the purchasable packages in display order.
func ListPackages() []models.Package {
	return []models.Package{
		packages[PackageBasic],
		packages[PackageProfessional],
		packages[PackageUnlimited],
	}
}
