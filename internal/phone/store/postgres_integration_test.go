//go:build integration

package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"phoneinventory/internal/phone/models"
	"phoneinventory/internal/phone/store"
	"phoneinventory/pkg/platform/sentinel"
	"phoneinventory/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	_ = s.postgres.DB.Close()
	_ = s.postgres.Container.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "phones"))
}

func newTestPhone(serial, imei string) *models.Phone {
	phone, err := models.New(
		serial, imei, "Galaxy10", "Samsung",
		[]string{"GSM", "LTE"}, 2, 8, 180, 4000, 799.99,
	)
	if err != nil {
		panic(err)
	}
	return phone
}

func (s *PostgresStoreSuite) TestInsertAndRoundTrip() {
	ctx := context.Background()

	inserted, err := s.store.Insert(ctx, newTestPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)
	s.Positive(inserted.ID)

	found, err := s.store.FindBySerial(ctx, "AAA11111111")
	s.Require().NoError(err)
	s.Equal(inserted.ID, found.ID)
	s.Equal("111111111111111", found.IMEI)
	s.Equal([]string{"GSM", "LTE"}, found.NetworkTechnologies, "ordered list survives the canonical string")
	s.Equal(799.99, found.Cost)
}

func (s *PostgresStoreSuite) TestConcurrentDuplicateSerial() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			imei := fmt.Sprintf("%015d", i+1)
			_, err := s.store.Insert(ctx, newTestPhone("RACE1111111", imei))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrDuplicateSerial) {
				conflictCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one insert should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get the serial conflict")
}

func (s *PostgresStoreSuite) TestDuplicateIMEI() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, newTestPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, newTestPhone("BBB22222222", "111111111111111"))
	s.Require().ErrorIs(err, sentinel.ErrDuplicateIMEI)
}

func (s *PostgresStoreSuite) TestFilterSubstringAndOrdering() {
	ctx := context.Background()

	first, err := models.New("AAA11111111", "111111111111111", "Zfold", "Samsung",
		[]string{"GSM", "LTE"}, 2, 8, 180, 4000, 1200)
	s.Require().NoError(err)
	second, err := models.New("BBB22222222", "222222222222222", "Pixel9", "Google",
		[]string{"5G", "LTE"}, 3, 8, 190, 4500, 899)
	s.Require().NoError(err)
	_, err = s.store.Insert(ctx, first)
	s.Require().NoError(err)
	_, err = s.store.Insert(ctx, second)
	s.Require().NoError(err)

	technologies, ok := models.FieldByName(models.FieldNetworkTechnologies)
	s.Require().True(ok)

	both, err := s.store.Filter(ctx, technologies, "LTE")
	s.Require().NoError(err)
	s.Require().Len(both, 2)
	// Ordered by brand ascending: Google before Samsung.
	s.Equal("BBB22222222", both[0].SerialNumber)
	s.Equal("AAA11111111", both[1].SerialNumber)

	gsmOnly, err := s.store.Filter(ctx, technologies, "GSM")
	s.Require().NoError(err)
	s.Require().Len(gsmOnly, 1)
	s.Equal("AAA11111111", gsmOnly[0].SerialNumber)

	cost, ok := models.FieldByName(models.FieldCost)
	s.Require().True(ok)
	cheap, err := s.store.Filter(ctx, cost, 899.0)
	s.Require().NoError(err)
	s.Require().Len(cheap, 1)
	s.Equal("BBB22222222", cheap[0].SerialNumber)
}

func (s *PostgresStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()

	inserted, err := s.store.Insert(ctx, newTestPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	inserted.Cost = 450
	inserted.NetworkTechnologies = []string{"5G"}
	updated, err := s.store.Update(ctx, inserted)
	s.Require().NoError(err)
	s.Equal(450.0, updated.Cost)

	found, err := s.store.FindBySerial(ctx, "AAA11111111")
	s.Require().NoError(err)
	s.Equal(450.0, found.Cost)
	s.Equal([]string{"5G"}, found.NetworkTechnologies)

	s.Require().NoError(s.store.Delete(ctx, "AAA11111111"))
	_, err = s.store.FindBySerial(ctx, "AAA11111111")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(ctx, "AAA11111111"), sentinel.ErrNotFound)

	missing := newTestPhone("ZZZ99999999", "999999999999999")
	_, err = s.store.Update(ctx, missing)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
