package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/repositories"
)

func seedOffer(t *testing.T, repo *repositories.OfferRepository, title string, starts, ends *time.Time, active bool) {
	t.Helper()
	err := repo.Create(&models.Offer{
		Title:    title,
		Discount: 10,
		StartsAt: starts,
		EndsAt:   ends,
		Active:   active,
	})
	require.NoError(t, err)
}

func TestListActiveRespectsDateWindow(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewOfferRepository(db)

	// Mid-afternoon clock; date bounds are stored at midnight.
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -2)
	future := today.AddDate(0, 0, 2)

	seedOffer(t, repo, "vigente", &past, &future, true)
	seedOffer(t, repo, "caducada", &past, &past, true)
	seedOffer(t, repo, "futura", &future, &future, true)
	seedOffer(t, repo, "desactivada", &past, &future, false)
	seedOffer(t, repo, "sin fechas", nil, nil, true)
	seedOffer(t, repo, "solo inicio", &past, nil, true)
	seedOffer(t, repo, "termina hoy", &past, &today, true)
	seedOffer(t, repo, "empieza hoy", &today, nil, true)

	offers, err := repo.ListActive(now)
	require.NoError(t, err)

	titles := make([]string, 0, len(offers))
	for _, o := range offers {
		titles = append(titles, o.Title)
	}
	assert.ElementsMatch(t, []string{
		"vigente", "sin fechas", "solo inicio", "termina hoy", "empieza hoy",
	}, titles)
}

func TestListAllIncludesEverything(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewOfferRepository(db)

	seedOffer(t, repo, "a", nil, nil, true)
	seedOffer(t, repo, "b", nil, nil, false)

	offers, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, offers, 2)
}
