package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/repositories/market"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
	"github.com/KirkDiggler/realm-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	committer unitofwork.Committer
	repo      market.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, _ := testutils.CreateTestRedisClient(s.T())

	committer, err := unitofwork.NewRedis(&unitofwork.Config{Client: client})
	s.Require().NoError(err)
	s.committer = committer

	repo, err := market.NewRedis(&market.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) commit(writes ...unitofwork.Write) {
	s.Require().NoError(s.committer.Commit(s.ctx, unitofwork.NewChangeset(writes...)))
}

func (s *RedisRepositoryTestSuite) list(id, seller string, currency entities.Currency, createdAt int64) *entities.MarketListing {
	l := &entities.MarketListing{
		ID:           id,
		SellerID:     seller,
		Item:         entities.ItemStack{TemplateID: "iron_sword", Amount: 1},
		CurrencyType: currency,
		Price:        10,
		CreatedAt:    createdAt,
	}
	if currency == entities.CurrencyDiamonds {
		l.Price, l.PriceDiamonds = 0, 3
	}
	w, err := s.repo.Put(nil, l)
	s.Require().NoError(err)
	s.commit(w)
	return l
}

func (s *RedisRepositoryTestSuite) TestGet() {
	l := s.list("lst_1", "chr_1", entities.CurrencyGold, 100)

	out, err := s.repo.Get(s.ctx, market.GetInput{ID: "lst_1"})
	s.Require().NoError(err)
	s.Equal(l, out.Listing)

	_, err = s.repo.Get(s.ctx, market.GetInput{ID: "lst_x"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListOpenFilters() {
	s.list("lst_1", "chr_1", entities.CurrencyGold, 100)
	s.list("lst_2", "chr_2", entities.CurrencyDiamonds, 200)
	s.list("lst_3", "chr_1", entities.CurrencyGold, 300)

	all, err := s.repo.ListOpen(s.ctx, market.ListOpenInput{})
	s.Require().NoError(err)
	s.Equal([]string{"lst_3", "lst_2", "lst_1"}, ids(all.Listings))

	gold, err := s.repo.ListOpen(s.ctx, market.ListOpenInput{Currency: entities.CurrencyGold})
	s.Require().NoError(err)
	s.Equal([]string{"lst_3", "lst_1"}, ids(gold.Listings))

	mine, err := s.repo.ListOpen(s.ctx, market.ListOpenInput{SellerID: "chr_1", Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"lst_3"}, ids(mine.Listings))

	_, err = s.repo.ListOpen(s.ctx, market.ListOpenInput{Currency: "pearls"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestSoldLeavesOpenIndex() {
	l := s.list("lst_1", "chr_1", entities.CurrencyGold, 100)

	sold := l.Clone()
	sold.IsSold = true
	sold.BuyerID = "chr_2"
	w, err := s.repo.Put(l, sold)
	s.Require().NoError(err)
	s.commit(w)

	out, err := s.repo.ListOpen(s.ctx, market.ListOpenInput{})
	s.Require().NoError(err)
	s.Empty(out.Listings)

	reopened := sold.Clone()
	reopened.IsSold = false
	_, err = s.repo.Put(sold, reopened)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	l := s.list("lst_1", "chr_1", entities.CurrencyGold, 100)
	s.commit(s.repo.Delete(l))

	_, err := s.repo.Get(s.ctx, market.GetInput{ID: "lst_1"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.ListOpen(s.ctx, market.ListOpenInput{SellerID: "chr_1"})
	s.Require().NoError(err)
	s.Empty(out.Listings)
}

func ids(listings []*entities.MarketListing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
