package invites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrinvite/internal/model"
)

func strPtr(s string) *string { return &s }

func sample() []model.Invite {
	return []model.Invite{
		{InviteCode: "A1", Data: strPtr("x"), IsValidated: true},
		{InviteCode: "B2", Data: nil, IsValidated: false},
	}
}

func codes(invites []model.Invite) []model.InviteCode {
	out := []model.InviteCode{}
	for _, inv := range invites {
		out = append(out, inv.InviteCode)
	}
	return out
}

func TestFilterExamples(t *testing.T) {
	invites := sample()

	assert.Equal(t, []model.InviteCode{"A1"}, codes(Filter(invites, "a1", StatusAll)))
	assert.Equal(t, []model.InviteCode{"B2"}, codes(Filter(invites, "", StatusPending)))
	assert.Equal(t, []model.InviteCode{}, codes(Filter(invites, "zzz", StatusAll)))
}

func TestFilterEmptyAllIsIdentity(t *testing.T) {
	invites := []model.Invite{
		{InviteCode: "C3"},
		{InviteCode: "A1", IsValidated: true},
		{InviteCode: "B2"},
	}

	assert.Equal(t, invites, Filter(invites, "", StatusAll))
}

func TestFilterMatchesDataCaseInsensitive(t *testing.T) {
	invites := []model.Invite{
		{InviteCode: "A1", Data: strPtr("Festa de Aniversário")},
		{InviteCode: "B2", Data: strPtr("Casamento")},
		{InviteCode: "C3"},
	}

	assert.Equal(t, []model.InviteCode{"A1"}, codes(Filter(invites, "FESTA", StatusAll)))
	assert.Equal(t, []model.InviteCode{"B2"}, codes(Filter(invites, "casa", StatusAll)))
}

func TestFilterCombinesTextAndStatus(t *testing.T) {
	invites := []model.Invite{
		{InviteCode: "VIP-1", IsValidated: true},
		{InviteCode: "VIP-2", IsValidated: false},
		{InviteCode: "GEN-1", IsValidated: true},
	}

	assert.Equal(t, []model.InviteCode{"VIP-1"}, codes(Filter(invites, "vip", StatusValidated)))
	assert.Equal(t, []model.InviteCode{"VIP-2"}, codes(Filter(invites, "vip", StatusPending)))
	assert.Equal(t, []model.InviteCode{"VIP-1", "GEN-1"}, codes(Filter(invites, "", StatusValidated)))
}

func TestFilterNilInput(t *testing.T) {
	out := Filter(nil, "", StatusAll)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestParseStatusFilter(t *testing.T) {
	tests := map[string]StatusFilter{
		"":          StatusAll,
		"all":       StatusAll,
		"Validated": StatusValidated,
		" pending ": StatusPending,
	}
	for in, want := range tests {
		got, err := ParseStatusFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatusFilter("expired")
	assert.ErrorIs(t, err, ErrUnknownStatusFilter)
}

func TestCountOf(t *testing.T) {
	assert.Equal(t, Counts{}, CountOf(nil))
	assert.Equal(t, Counts{Total: 2, Validated: 1, Pending: 1}, CountOf(sample()))

	all := []model.Invite{{IsValidated: true}, {IsValidated: true}, {IsValidated: true}}
	c := CountOf(all)
	assert.Equal(t, 3, c.Validated)
	assert.Equal(t, c.Total-c.Validated, c.Pending)
}
