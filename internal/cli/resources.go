package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindlens/internal/resources"
)

// Resources finds mental health facilities near a place, falling back to
// national helplines when nothing is found.
func (a *App) Resources(ctx context.Context, place string) error {
	facilities := a.resources.NearbyHospitals(ctx, place, 0)

	for i, f := range facilities {
		a.println(fmt.Sprintf("%d. %s", i+1, f.Name))
		a.println("   Address: " + f.Address)
		a.println("   Phone:   " + f.Phone)
		a.println("   Website: " + f.Website)
	}
	return nil
}

// Helplines prints the static crisis helpline list.
func (a *App) Helplines() error {
	for _, h := range resources.CrisisResources() {
		a.println(fmt.Sprintf("%s: %s", h.Name, h.Phone))
		a.println("   " + h.Description)
	}
	return nil
}
