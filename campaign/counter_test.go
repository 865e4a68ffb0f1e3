package campaign

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name string
		in   Counter
		dir  Direction
		want Counter
	}{
		{"next within year", Counter{2025, 5, 30}, Next, Counter{2025, 6, 30}},
		{"next rolls year", Counter{2025, 30, 30}, Next, Counter{2026, 1, 30}},
		{"previous within year", Counter{2025, 5, 30}, Previous, Counter{2025, 4, 30}},
		{"previous rolls year", Counter{2025, 1, 30}, Previous, Counter{2024, 30, 30}},
		{"single campaign year", Counter{2025, 1, 1}, Next, Counter{2026, 1, 1}},
		{"campaign above lowered last rolls forward", Counter{2025, 28, 26}, Next, Counter{2026, 1, 26}},
		{"campaign above lowered last clamps back", Counter{2025, 28, 26}, Previous, Counter{2025, 26, 26}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(tt.in, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvance_Invalid(t *testing.T) {
	_, err := Advance(Counter{2025, 1, 0}, Next)
	assert.ErrorIs(t, err, ErrInvalidCounter)

	_, err = Advance(Counter{2025, 1, 30}, Direction(2))
	assert.ErrorIs(t, err, ErrInvalidCounter)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.ErrorIs(t, Counter{2025, 0, 30}.Validate(), ErrInvalidCounter)
	assert.ErrorIs(t, Counter{2025, 31, 30}.Validate(), ErrInvalidCounter)
	assert.ErrorIs(t, Counter{2025, 1, 0}.Validate(), ErrInvalidCounter)
}

func validCounter() gopter.Gen {
	return gen.IntRange(1, 30).FlatMap(func(v interface{}) gopter.Gen {
		last := v.(int)
		return gopter.CombineGens(gen.IntRange(1900, 2200), gen.IntRange(1, last)).
			Map(func(vals []interface{}) Counter {
				return Counter{Year: vals[0].(int), Campaign: vals[1].(int), LastCampaign: last}
			})
	}, reflect.TypeOf(Counter{}))
}

func TestAdvance_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("next then previous is the identity", prop.ForAll(
		func(c Counter) bool {
			n, err := Advance(c, Next)
			if err != nil {
				return false
			}
			back, err := Advance(n, Previous)
			return err == nil && back == c
		},
		validCounter(),
	))

	properties.Property("previous then next is the identity", prop.ForAll(
		func(c Counter) bool {
			p, err := Advance(c, Previous)
			if err != nil {
				return false
			}
			back, err := Advance(p, Next)
			return err == nil && back == c
		},
		validCounter(),
	))

	properties.Property("counter stays within 1..last", prop.ForAll(
		func(c Counter, forward bool) bool {
			dir := Previous
			if forward {
				dir = Next
			}
			got, err := Advance(c, dir)
			return err == nil && got.Validate() == nil
		},
		validCounter(),
		gen.Bool(),
	))

	properties.Property("year changes only at the boundary", prop.ForAll(
		func(c Counter) bool {
			n, _ := Advance(c, Next)
			if c.Campaign == c.LastCampaign {
				return n.Year == c.Year+1 && n.Campaign == 1
			}
			return n.Year == c.Year
		},
		validCounter(),
	))

	properties.TestingRun(t)
}
