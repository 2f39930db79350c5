package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/realm-api/internal/engine/custody"
	"github.com/KirkDiggler/realm-api/internal/errors"
	inventoryorch "github.com/KirkDiggler/realm-api/internal/orchestrators/inventory"
	"github.com/KirkDiggler/realm-api/internal/pkg/idgen"
	"github.com/KirkDiggler/realm-api/internal/repositories/ledger"
	ledgermock "github.com/KirkDiggler/realm-api/internal/repositories/ledger/mock"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	unitofworkmock "github.com/KirkDiggler/realm-api/internal/repositories/unitofwork/mock"
	"github.com/KirkDiggler/realm-api/internal/services/inventory"
	"github.com/KirkDiggler/realm-api/internal/testutils"
	"github.com/KirkDiggler/realm-api/internal/testutils/builders"
)

func newOrchestrator(t *testing.T, realm *testutils.Realm, trades ledger.Repository, committer unitofwork.Committer) *inventoryorch.Orchestrator {
	t.Helper()

	orch, err := inventoryorch.New(&inventoryorch.Config{
		CharacterRepo:  realm.Characters,
		MarketRepo:     realm.Listings,
		Ledger:         trades,
		Committer:      committer,
		Tuning:         realm.Tuning,
		Clock:          realm.Clock,
		IDGenerator:    idgen.NewSequential(idgen.PrefixListing),
		CommitAttempts: 3,
	})
	require.NoError(t, err)
	return orch
}

func potionSale(characterID string) *inventory.SellToVendorInput {
	return &inventory.SellToVendorInput{
		CharacterID: characterID,
		Items:       []custody.SaleRequest{{TemplateID: "health_potion", Amount: 2}},
	}
}

func TestSaleSurvivesLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	realm := testutils.NewRealm(t)
	trades := ledgermock.NewMockRepository(ctrl)
	orch := newOrchestrator(t, realm, trades, realm.Committer)

	realm.SeedCharacter(t, builders.NewCharacter("chr_1").WithItem("health_potion", 2).Build())

	trades.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input ledger.RecordInput) error {
			require.Len(t, input.Entries, 1)
			assert.Equal(t, ledger.KindVendorSale, input.Entries[0].Kind)
			assert.Equal(t, 2, input.Entries[0].Amount)
			return errors.Internal("ledger disk full")
		})

	out, err := orch.SellToVendor(context.Background(), potionSale("chr_1"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.GoldGained)
	assert.Equal(t, int64(10), realm.Character(t, "chr_1").Gold)
}

func TestSaleReturnsCommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	realm := testutils.NewRealm(t)
	trades := ledgermock.NewMockRepository(ctrl)
	committer := unitofworkmock.NewMockCommitter(ctrl)
	orch := newOrchestrator(t, realm, trades, committer)

	realm.SeedCharacter(t, builders.NewCharacter("chr_1").WithItem("health_potion", 2).Build())

	committer.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		Return(errors.New(errors.CodeUnavailable, "redis down")).
		Times(1)

	_, err := orch.SellToVendor(context.Background(), potionSale("chr_1"))
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.Zero(t, realm.Character(t, "chr_1").Gold)
}

func TestSaleGivesUpAfterRepeatedConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	realm := testutils.NewRealm(t)
	trades := ledgermock.NewMockRepository(ctrl)
	committer := unitofworkmock.NewMockCommitter(ctrl)
	orch := newOrchestrator(t, realm, trades, committer)

	realm.SeedCharacter(t, builders.NewCharacter("chr_1").WithItem("health_potion", 2).Build())

	committer.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cs *unitofwork.Changeset) error {
			assert.NotNil(t, cs)
			return errors.Aborted("concurrent update detected")
		}).
		Times(3)

	_, err := orch.SellToVendor(context.Background(), potionSale("chr_1"))
	require.Error(t, err)
	assert.True(t, errors.IsAborted(err))
}
