package allocation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSnapshot = `
fee: 0.5
assets:
  - name: Stocks
    expected_return: 6
    risk: 20
    investment: 50
  - name: Bonds
    expected_return: 2
    risk: 30
    investment: 50
correlations:
  - {a: Stocks, b: Bonds, value: 0.5}
`

func TestDecodeSnapshot_YAML(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot), YAML)
	require.NoError(t, err)
	require.Len(t, snap.Assets, 2)

	s, err := snap.Session()
	require.NoError(t, err)

	totals := s.Totals()
	assert.Equal(t, 100.0, totals.TotalInvestment)
	// sqrt(0.1² + 0.15² + 2*0.5*0.1*0.15)
	assert.InDelta(t, 0.2179449, totals.TotalRisk, 1e-6)
	// (6*0.5 + 2*0.5)/100 - 0.005
	assert.InDelta(t, 0.035, totals.TotalReturn, 1e-12)
}

func TestDecodeSnapshot_JSONWithRatios(t *testing.T) {
	doc := `{
		"total": 1000,
		"assets": [
			{"name": "Stocks", "ratio": 60},
			{"name": "Bonds", "ratio": 40}
		]
	}`
	snap, err := DecodeSnapshot(strings.NewReader(doc), JSON)
	require.NoError(t, err)

	s, err := snap.Session()
	require.NoError(t, err)
	assert.InDelta(t, 600, s.Store().Investment("Stocks"), 1e-9)
	assert.InDelta(t, 400, s.Store().Investment("Bonds"), 1e-9)
}

func TestSnapshotSession_Rejected(t *testing.T) {
	tcs := []struct {
		name string
		doc  string
		want error
	}{
		{"duplicate", `{"assets":[{"name":"A"},{"name":"A"}]}`, ErrDuplicateAsset},
		{"empty name", `{"assets":[{"name":""}]}`, ErrEmptyName},
		{"negative", `{"assets":[{"name":"A","investment":-3}]}`, ErrNegativeAmount},
		{"unknown pair", `{"assets":[{"name":"A"}],"correlations":[{"a":"A","b":"B","value":1}]}`, ErrUnknownAsset},
		{"ratios", `{"assets":[{"name":"A","ratio":60},{"name":"B","ratio":30}]}`, ErrRatioSum},
		{"total without ratios", `{"total":10,"assets":[{"name":"A"}]}`, ErrRatioSum},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := DecodeSnapshot(strings.NewReader(tc.doc), JSON)
			require.NoError(t, err)
			_, err = snap.Session()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSelectSnapshot(t *testing.T) {
	doc := `{"portfolios": [
		{"assets": [{"name": "Cash", "investment": 10}]},
		{"assets": [{"name": "Gold", "investment": 20}]}
	]}`

	snap, err := SelectSnapshot(strings.NewReader(doc), "$.portfolios[1]")
	require.NoError(t, err)
	require.Len(t, snap.Assets, 1)
	assert.Equal(t, "Gold", snap.Assets[0].Name)

	_, err = SelectSnapshot(strings.NewReader(doc), "$.portfolios[0].assets[0].name")
	assert.Error(t, err, "a string is not a snapshot")
}

func TestSnapshotOf(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot), YAML)
	require.NoError(t, err)
	s, err := snap.Session()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SnapshotOf(s.Store()).Encode(&buf, YAML))

	back, err := DecodeSnapshot(&buf, YAML)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, YAML, FormatOf("a/b.YML"))
	assert.Equal(t, YAML, FormatOf("b.yaml"))
	assert.Equal(t, JSON, FormatOf("b.json"))
	assert.Equal(t, JSON, FormatOf("b"))
}
