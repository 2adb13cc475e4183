package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/ivoice/internal/clock"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
	"github.com/smallbiznis/ivoice/internal/store/local"
	"github.com/smallbiznis/ivoice/internal/store/remote"
)

func newGateway(t *testing.T) *store.Gateway {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	primary := remote.New(func() (*gorm.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, node, zap.NewNop())
	return store.NewGateway(primary, local.New(t.TempDir(), node), zap.NewNop())
}

func TestEnsureSeedsEmptyWorkingSet(t *testing.T) {
	app := state.New(state.User{ID: "u1"})
	clk := clock.NewFakeClock(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))

	require.NoError(t, Ensure(context.Background(), app, newGateway(t), clk, zap.NewNop()))
	assert.Len(t, app.Parties(), 2)
	assert.Len(t, app.Items(), 3)
}

func TestEnsureSkipsNonEmptyWorkingSet(t *testing.T) {
	app := state.New(state.User{ID: "u1"})
	clk := clock.NewFakeClock(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	gw := newGateway(t)

	require.NoError(t, Ensure(context.Background(), app, gw, clk, zap.NewNop()))
	before := len(app.Parties())

	require.NoError(t, Ensure(context.Background(), app, gw, clk, zap.NewNop()))
	assert.Len(t, app.Parties(), before, "seeding twice must not duplicate records")
}
