package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

func TestNormalizeMapsURL(t *testing.T) {
	cases := map[string]string{
		`<iframe src="https://maps.google.com/embed?pb=1" style="border:0"></iframe>`: "https://maps.google.com/embed?pb=1",
		`<IFRAME width="1" src="https://maps.google.com/embed?pb=2"></IFRAME>`:          "https://maps.google.com/embed?pb=2",
		"https://maps.google.com/embed?pb=3":                                          "https://maps.google.com/embed?pb=3",
		"<iframe without a source>":                                                   "<iframe without a source>",
		"":                                                                            "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeMapsURL(in), in)
	}
}

func TestNormalizeIcon(t *testing.T) {
	require.Equal(t, "beach_access", NormalizeIcon(" Beach Access "))
	require.Equal(t, "local_dining", NormalizeIcon("local-dining"))
	require.Equal(t, domain.DefaultCategoryIcon, NormalizeIcon("   "))
}

func TestBaseSlug(t *testing.T) {
	require.Equal(t, "air-terjun-tiu-kelep", baseSlug("Air Terjun Tiu Kelep", "destination"))
	require.Equal(t, "district", baseSlug("???", "district"))

	long := baseSlug(strings.Repeat("ab ", 150), "destination")
	require.LessOrEqual(t, len(long), maxBaseSlugLength)
	require.False(t, strings.HasSuffix(long, "-"))
}

func TestInsertWithSlugGivesUpAfterRepeatedRaces(t *testing.T) {
	attempts := 0
	_, err := insertWithSlug(context.Background(), "kuta",
		func(context.Context, string) (bool, error) { return false, nil },
		func(string) (*domain.Destination, error) {
			attempts++
			return nil, &ports.UniqueViolation{Constraint: "destination_slug_key"}
		})
	require.ErrorIs(t, err, ErrSlugConflict)
	require.Equal(t, maxSlugRaceRetries+1, attempts)
}

func TestInsertWithSlugPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := insertWithSlug(context.Background(), "kuta",
		func(context.Context, string) (bool, error) { return false, nil },
		func(string) (*domain.Destination, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}
