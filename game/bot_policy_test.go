package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(cfg BotConfig) *BotPolicy {
	return NewBotPolicy(cfg, rand.New(rand.NewSource(1)))
}

func TestNewBotPolicyDefaults(t *testing.T) {
	p := newTestPolicy(BotConfig{})
	assert.Equal(t, DefaultBotStepInterval, p.StepInterval())

	p = newTestPolicy(BotConfig{StepInterval: time.Millisecond, MinStepInterval: 5 * time.Millisecond})
	assert.Equal(t, 5*time.Millisecond, p.StepInterval(), "the initial interval is clamped to the minimum")
}

func TestScanForPlayer(t *testing.T) {
	cases := []struct {
		name   string
		layout string
		want   Direction
		found  bool
	}{
		{
			name: "Player above",
			layout: `
				WWWWW
				WWPWW
				WW.WW
				WWEWW
				WWWWW`,
			want: Up, found: true,
		},
		{
			name: "Player to the left past exit and key",
			layout: `
				WWWWWWW
				WPVK.EW
				WWWWWWW`,
			want: Left, found: true,
		},
		{
			name: "Player below",
			layout: `
				WWW
				WEW
				W.W
				WPW
				WWW`,
			want: Down, found: true,
		},
		{
			name: "Player to the right",
			layout: `
				WWWWWW
				WE...P
				WWWWWW`,
			want: Right, found: true,
		},
		{
			name: "Wall blocks the ray",
			layout: `
				WWWWWWW
				WE.W.PW
				WWWWWWW`,
			found: false,
		},
		{
			name: "Player around a corner",
			layout: `
				WWWWW
				WE..W
				WWW.W
				WWWPW
				WWWWW`,
			found: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseGrid(tc.layout)
			require.NoError(t, err)

			dir, found := newTestPolicy(BotConfig{}).ScanForPlayer(g, g.Positions(TileBot)[0])
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.want, dir)
			}
		})
	}
}

func TestChooseDirection(t *testing.T) {
	p := newTestPolicy(BotConfig{})

	t.Run("Anywhere outside a junction", func(t *testing.T) {
		seen := map[Direction]int{}
		for i := 0; i < 1000; i++ {
			seen[p.ChooseDirection(Right, false)]++
		}
		assert.Len(t, seen, 4)
	})

	t.Run("Never back at a junction", func(t *testing.T) {
		for _, current := range Directions {
			seen := map[Direction]int{}
			for i := 0; i < 1000; i++ {
				seen[p.ChooseDirection(current, true)]++
			}
			assert.Len(t, seen, 3)
			assert.Zero(t, seen[current.Opposite()])
		}
	})
}

func TestTimers(t *testing.T) {
	t.Run("Step timer", func(t *testing.T) {
		p := newTestPolicy(BotConfig{StepInterval: 100 * time.Millisecond})

		assert.False(t, p.Tick(60*time.Millisecond))
		assert.True(t, p.Tick(40*time.Millisecond))
		assert.True(t, p.Tick(10*time.Millisecond), "stays due until restarted")

		p.RestartTimer()
		assert.False(t, p.Tick(10*time.Millisecond))
	})

	t.Run("Speed up per elapsed period", func(t *testing.T) {
		cfg := BotConfig{
			StepInterval:    100 * time.Millisecond,
			SpeedUpPeriod:   time.Second,
			SpeedUpDelta:    20 * time.Millisecond,
			MinStepInterval: 10 * time.Millisecond,
		}
		p := newTestPolicy(cfg)

		for n := 1; n <= 8; n++ {
			for i := 0; i < 4; i++ {
				p.Tick(250 * time.Millisecond)
			}
			want := max(cfg.StepInterval-time.Duration(n)*cfg.SpeedUpDelta, cfg.MinStepInterval)
			assert.Equal(t, want, p.StepInterval(), "after %d periods", n)
		}
	})

	t.Run("Long tick applies every elapsed period", func(t *testing.T) {
		p := newTestPolicy(BotConfig{StepInterval: 100 * time.Millisecond})
		p.Tick(2500 * time.Millisecond)
		assert.Equal(t, 60*time.Millisecond, p.StepInterval())
	})

	t.Run("Speed up stays positive", func(t *testing.T) {
		p := newTestPolicy(BotConfig{StepInterval: 30 * time.Millisecond, SpeedUpDelta: 50 * time.Millisecond})
		for i := 0; i < 10; i++ {
			p.SpeedUp()
		}
		assert.Equal(t, DefaultBotMinStepInterval, p.StepInterval())
	})
}
