package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerNow = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

const adultBirthdate = "15-05-1990"

type offense struct {
	date   string
	points int
}

func ledgerWith(t *testing.T, birthdate string, now time.Time, offenses ...offense) *domain.DemeritLedger {
	t.Helper()
	l := domain.NewDemeritLedger()
	for _, o := range offenses {
		require.NoError(t, l.AddOffense(o.date, o.points, birthdate, now))
	}
	return l
}

func TestDemeritLedger_WindowMaximum(t *testing.T) {
	tests := []struct {
		name     string
		offenses []offense
		want     int
	}{
		{
			name:     "offenses more than two years apart never combine",
			offenses: []offense{{"01-01-2018", 5}, {"01-01-2021", 4}, {"01-01-2024", 5}},
			want:     5,
		},
		{
			name:     "two offenses inside one window",
			offenses: []offense{{"01-01-2018", 5}, {"01-01-2021", 4}, {"01-06-2022", 5}},
			want:     9,
		},
		{
			name:     "two year anniversary is inside the window",
			offenses: []offense{{"01-01-2020", 6}, {"01-01-2022", 1}},
			want:     7,
		},
		{
			name:     "day after the anniversary is outside",
			offenses: []offense{{"01-01-2020", 6}, {"31-12-2021", 1}, {"02-01-2022", 6}},
			want:     7,
		},
		{
			name:     "leap day window closes on 28 February",
			offenses: []offense{{"29-02-2020", 6}, {"28-02-2022", 1}},
			want:     7,
		},
		{
			name:     "leap day window excludes 1 March",
			offenses: []offense{{"29-02-2020", 6}, {"01-03-2022", 1}},
			want:     6,
		},
		{
			name:     "worst window is not the latest",
			offenses: []offense{{"01-01-2015", 6}, {"01-06-2015", 6}, {"01-01-2016", 2}, {"01-01-2024", 3}},
			want:     14,
		},
		{
			name:     "same date accumulates",
			offenses: []offense{{"01-01-2023", 3}, {"01-01-2023", 4}},
			want:     7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledgerWith(t, adultBirthdate, ledgerNow, tt.offenses...)
			assert.Equal(t, tt.want, l.MaxWindowPoints())
		})
	}
}

func TestDemeritLedger_YoungDriverSuspendedOnAnniversary(t *testing.T) {
	const birthdate = "01-01-2008"
	l := ledgerWith(t, birthdate, ledgerNow, offense{"01-01-2020", 6}, offense{"01-01-2022", 1})
	assert.Equal(t, 7, l.MaxWindowPoints())
	assert.True(t, l.IsSuspended())
}

func TestDemeritLedger_InsertionOrderIndependent(t *testing.T) {
	forward := ledgerWith(t, adultBirthdate, ledgerNow,
		offense{"01-01-2018", 5}, offense{"01-01-2021", 4}, offense{"01-06-2022", 5}, offense{"01-03-2023", 2})
	backward := ledgerWith(t, adultBirthdate, ledgerNow,
		offense{"01-03-2023", 2}, offense{"01-06-2022", 5}, offense{"01-01-2021", 4}, offense{"01-01-2018", 5})

	assert.Equal(t, forward.MaxWindowPoints(), backward.MaxWindowPoints())
	assert.Equal(t, forward.Entries(), backward.Entries())
	assert.Equal(t, 9, forward.MaxWindowPoints())
}

func TestDemeritLedger_SameDateSumsIntoOneEntry(t *testing.T) {
	l := ledgerWith(t, adultBirthdate, ledgerNow, offense{"01-01-2023", 3}, offense{"01-01-2023", 4})

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].Points)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), entries[0].Date)
	assert.Equal(t, 1, l.Len())
}

func TestDemeritLedger_AdultSuspension(t *testing.T) {
	l := ledgerWith(t, adultBirthdate, ledgerNow, offense{"01-01-2023", 6}, offense{"01-02-2023", 6})
	assert.Equal(t, 12, l.MaxWindowPoints())
	assert.False(t, l.IsSuspended(), "twelve points is not over the adult threshold")

	require.NoError(t, l.AddOffense("01-03-2023", 1, adultBirthdate, ledgerNow))
	assert.True(t, l.IsSuspended())
}

func TestDemeritLedger_YoungDriverSuspension(t *testing.T) {
	const birthdate = "01-01-2008" // 18 at ledgerNow
	l := ledgerWith(t, birthdate, ledgerNow, offense{"01-01-2025", 6})
	assert.False(t, l.IsSuspended(), "six points is not over the young driver threshold")

	require.NoError(t, l.AddOffense("01-02-2025", 1, birthdate, ledgerNow))
	assert.True(t, l.IsSuspended())
}

func TestDemeritLedger_AgeTakenAtInjectedInstant(t *testing.T) {
	const birthdate = "01-01-2006"
	offenses := []offense{{"01-01-2025", 4}, {"01-02-2025", 4}}

	at20 := ledgerWith(t, birthdate, ledgerNow, offenses...)
	assert.True(t, at20.IsSuspended())

	at21 := ledgerWith(t, birthdate, time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC), offenses...)
	assert.False(t, at21.IsSuspended())
}

func TestDemeritLedger_IsSuspendedIsNotRecomputedOnRead(t *testing.T) {
	l := ledgerWith(t, "01-01-2006", ledgerNow, offense{"01-01-2025", 4}, offense{"01-02-2025", 4})
	require.True(t, l.IsSuspended())

	// Reading after the driver would have turned 21 still reports the stored flag.
	assert.True(t, l.IsSuspended())
	assert.Equal(t, 8, l.MaxWindowPoints())
}

func TestDemeritLedger_RejectsInvalidOffense(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		points  int
		wantErr error
	}{
		{name: "year first date", date: "2024-06-20", points: 2, wantErr: apperrors.ErrInvalidDate},
		{name: "impossible date", date: "31-02-2024", points: 2, wantErr: apperrors.ErrInvalidDate},
		{name: "zero points", date: "20-06-2024", points: 0, wantErr: apperrors.ErrInvalidPoints},
		{name: "seven points", date: "20-06-2024", points: 7, wantErr: apperrors.ErrInvalidPoints},
		{name: "ten points", date: "20-06-2024", points: 10, wantErr: apperrors.ErrInvalidPoints},
		{name: "negative points", date: "20-06-2024", points: -1, wantErr: apperrors.ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := domain.NewDemeritLedger()
			err := l.AddOffense(tt.date, tt.points, adultBirthdate, ledgerNow)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Zero(t, l.Len(), "rejected offense must not be recorded")
			assert.False(t, l.IsSuspended())
		})
	}
}

func TestDemeritLedger_PointBoundariesAccepted(t *testing.T) {
	l := domain.NewDemeritLedger()
	assert.NoError(t, l.AddOffense("20-06-2024", domain.MinDemeritPoints, adultBirthdate, ledgerNow))
	assert.NoError(t, l.AddOffense("21-06-2024", domain.MaxDemeritPoints, adultBirthdate, ledgerNow))
	assert.Equal(t, 7, l.MaxWindowPoints())
}

func TestSuspensionThreshold(t *testing.T) {
	assert.Equal(t, 6, domain.SuspensionThreshold(0))
	assert.Equal(t, 6, domain.SuspensionThreshold(20))
	assert.Equal(t, 12, domain.SuspensionThreshold(21))
	assert.Equal(t, 12, domain.SuspensionThreshold(80))
}

func TestPerson_AddDemeritPoints(t *testing.T) {
	p := &domain.Person{PersonID: "56s_@x#FAB", Birthdate: "15-11-2000"}
	require.NoError(t, p.AddDemeritPoints("15-03-2023", 3, ledgerNow))
	require.NoError(t, p.AddDemeritPoints("01-05-2024", 4, ledgerNow))

	assert.False(t, p.IsSuspended())
	assert.Equal(t, 7, p.Offenses.MaxWindowPoints())
	assert.Equal(t, 25, p.Age(ledgerNow))
}

func TestDemeritLedger_CloneIsIndependent(t *testing.T) {
	l := ledgerWith(t, adultBirthdate, ledgerNow, offense{"01-01-2023", 6})
	c := l.Clone()

	require.NoError(t, l.AddOffense("01-02-2023", 6, adultBirthdate, ledgerNow))
	require.NoError(t, l.AddOffense("01-03-2023", 1, adultBirthdate, ledgerNow))

	assert.True(t, l.IsSuspended())
	assert.False(t, c.IsSuspended())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 6, c.MaxWindowPoints())
}
