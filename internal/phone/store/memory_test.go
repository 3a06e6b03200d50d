package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"phoneinventory/internal/phone/models"
	"phoneinventory/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newPhone(serial, imei string) *models.Phone {
	phone, err := models.New(
		serial, imei, "Galaxy10", "Samsung",
		[]string{"GSM", "LTE"}, 2, 8, 180, 4000, 799.99,
	)
	s.Require().NoError(err)
	return phone
}

func (s *MemoryStoreSuite) TestInsertAssignsSequentialIDs() {
	first, err := s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)
	second, err := s.store.Insert(s.ctx, s.newPhone("BBB22222222", "222222222222222"))
	s.Require().NoError(err)

	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)
}

func (s *MemoryStoreSuite) TestUniqueConstraints() {
	s.Run("duplicate serial number", func() {
		_, err := s.store.Insert(s.ctx, s.newPhone("DUP11111111", "333333333333333"))
		s.Require().NoError(err)

		_, err = s.store.Insert(s.ctx, s.newPhone("DUP11111111", "444444444444444"))
		s.Require().ErrorIs(err, sentinel.ErrDuplicateSerial)
	})

	s.Run("duplicate imei", func() {
		_, err := s.store.Insert(s.ctx, s.newPhone("CCC33333333", "555555555555555"))
		s.Require().NoError(err)

		_, err = s.store.Insert(s.ctx, s.newPhone("DDD44444444", "555555555555555"))
		s.Require().ErrorIs(err, sentinel.ErrDuplicateIMEI)
	})
}

func (s *MemoryStoreSuite) TestFindBySerial() {
	inserted, err := s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	found, err := s.store.FindBySerial(s.ctx, "AAA11111111")
	s.Require().NoError(err)
	s.Equal(inserted.ID, found.ID)
	s.Equal([]string{"GSM", "LTE"}, found.NetworkTechnologies)

	_, err = s.store.FindBySerial(s.ctx, "ZZZ99999999")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListAll() {
	phones, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(phones)

	_, err = s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)
	_, err = s.store.Insert(s.ctx, s.newPhone("BBB22222222", "222222222222222"))
	s.Require().NoError(err)

	phones, err = s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(phones, 2)
}

func (s *MemoryStoreSuite) TestReturnedRecordsDoNotAliasStoreState() {
	_, err := s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	found, err := s.store.FindBySerial(s.ctx, "AAA11111111")
	s.Require().NoError(err)
	found.NetworkTechnologies[0] = "5G"
	found.Cost = 1

	again, err := s.store.FindBySerial(s.ctx, "AAA11111111")
	s.Require().NoError(err)
	s.Equal("GSM", again.NetworkTechnologies[0])
	s.Equal(799.99, again.Cost)
}

func (s *MemoryStoreSuite) TestFilterSubstringSemantics() {
	first, err := models.New("AAA11111111", "111111111111111", "Galaxy10", "Samsung",
		[]string{"GSM", "LTE"}, 2, 8, 180, 4000, 799.99)
	s.Require().NoError(err)
	second, err := models.New("BBB22222222", "222222222222222", "Pixel9", "Google",
		[]string{"5G", "LTE"}, 3, 8, 190, 4500, 899.99)
	s.Require().NoError(err)
	_, err = s.store.Insert(s.ctx, first)
	s.Require().NoError(err)
	_, err = s.store.Insert(s.ctx, second)
	s.Require().NoError(err)

	field, ok := models.FieldByName(models.FieldNetworkTechnologies)
	s.Require().True(ok)

	both, err := s.store.Filter(s.ctx, field, "LTE")
	s.Require().NoError(err)
	s.Len(both, 2)

	gsmOnly, err := s.store.Filter(s.ctx, field, "GSM")
	s.Require().NoError(err)
	s.Require().Len(gsmOnly, 1)
	s.Equal("AAA11111111", gsmOnly[0].SerialNumber)
}

func (s *MemoryStoreSuite) TestFilterOrdering() {
	records := []struct {
		serial, imei, model, brand string
		cost                       float64
	}{
		{"AAA11111111", "111111111111111", "Zfold", "Samsung", 1200},
		{"BBB22222222", "222222222222222", "Pixel9", "Google", 899},
		{"CCC33333333", "333333333333333", "Pixel8", "Google", 699},
		{"DDD44444444", "444444444444444", "Pixel8", "Google", 599},
	}
	for _, r := range records {
		phone, err := models.New(r.serial, r.imei, r.model, r.brand,
			[]string{"LTE"}, 2, 8, 180, 4000, r.cost)
		s.Require().NoError(err)
		_, err = s.store.Insert(s.ctx, phone)
		s.Require().NoError(err)
	}

	field, ok := models.FieldByName(models.FieldNumberOfCameras)
	s.Require().True(ok)

	// All match; result must come back ordered by (brand, model, cost).
	phones, err := s.store.Filter(s.ctx, field, 2)
	s.Require().NoError(err)
	s.Require().Len(phones, 4)
	s.Equal("DDD44444444", phones[0].SerialNumber) // Google Pixel8 599
	s.Equal("CCC33333333", phones[1].SerialNumber) // Google Pixel8 699
	s.Equal("BBB22222222", phones[2].SerialNumber) // Google Pixel9 899
	s.Equal("AAA11111111", phones[3].SerialNumber) // Samsung Zfold 1200
}

func (s *MemoryStoreSuite) TestUpdate() {
	inserted, err := s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	inserted.Cost = 450
	updated, err := s.store.Update(s.ctx, inserted)
	s.Require().NoError(err)
	s.Equal(450.0, updated.Cost)

	found, err := s.store.FindBySerial(s.ctx, "AAA11111111")
	s.Require().NoError(err)
	s.Equal(450.0, found.Cost)

	missing := s.newPhone("ZZZ99999999", "999999999999999")
	_, err = s.store.Update(s.ctx, missing)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestDelete() {
	_, err := s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(s.ctx, "AAA11111111"))
	_, err = s.store.FindBySerial(s.ctx, "AAA11111111")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, "AAA11111111"), sentinel.ErrNotFound)

	// A deleted serial and imei can be reused.
	_, err = s.store.Insert(s.ctx, s.newPhone("AAA11111111", "111111111111111"))
	s.Require().NoError(err)
}
