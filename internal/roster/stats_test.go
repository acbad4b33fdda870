package roster

import (
	"testing"

	. "rcsc-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, DefaultPrices)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Revenue)
	assert.Empty(t, stats.ByWing)
	assert.Empty(t, stats.ByClass)
}

func TestComputeStats_RevenueSplit(t *testing.T) {
	withTshirt := sampleRow(1, "rahim")
	withTshirt.MembershipType = MembershipWithTshirt

	withoutTshirt := sampleRow(2, "karim")
	withoutTshirt.MembershipType = MembershipWithoutTshirt

	stats := ComputeStats([]Registration{withTshirt, withoutTshirt}, DefaultPrices)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 250+150, stats.Revenue)
}

func TestComputeStats_Counters(t *testing.T) {
	given := true
	notGiven := false

	verified := sampleRow(1, "rahim")
	verified.MembershipType = MembershipWithTshirt
	verified.IsValidated = true
	verified.TshirtGiven = &given
	verified.IDCardGiven = &given

	pending := sampleRow(2, "karim")
	pending.TshirtGiven = &notGiven

	stats := ComputeStats([]Registration{verified, pending}, DefaultPrices)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Verified)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.TshirtsGiven)
	assert.Equal(t, 1, stats.IDCardsGiven)
}

func TestComputeStats_TshirtGivenIgnoredWithoutTshirtMembership(t *testing.T) {
	// a without-tshirt row with a stray tshirt_given flag must not count
	given := true
	row := sampleRow(1, "rahim")
	row.MembershipType = MembershipWithoutTshirt
	row.TshirtGiven = &given

	stats := ComputeStats([]Registration{row}, DefaultPrices)

	assert.Zero(t, stats.TshirtsGiven)
}

func TestComputeStats_GroupCounts(t *testing.T) {
	first := sampleRow(1, "rahim")
	first.Wing = "EMMS"
	first.ClassGrade = "IX"

	second := sampleRow(2, "karim")
	second.Wing = "EMMS"
	second.ClassGrade = "XI"

	third := sampleRow(3, "salma")
	third.Wing = "BMDS"
	third.ClassGrade = "IX"

	stats := ComputeStats([]Registration{first, second, third}, DefaultPrices)

	assert.Equal(t, map[string]int{"EMMS": 2, "BMDS": 1}, stats.ByWing)
	assert.Equal(t, map[string]int{"IX": 2, "XI": 1}, stats.ByClass)
}

func TestComputeStats_DeviceBreakdown(t *testing.T) {
	desktop := "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
	mobile := "Mozilla/5.0 (Linux; Android 13; SM-A525F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36"

	first := sampleRow(1, "rahim")
	first.UserAgent = &desktop
	second := sampleRow(2, "karim")
	second.UserAgent = &mobile
	third := sampleRow(3, "salma")

	stats := ComputeStats([]Registration{first, second, third}, DefaultPrices)

	assert.Equal(t, map[string]int{"Desktop": 1, "Mobile": 1, "Unknown": 1}, stats.ByDevice)
}
