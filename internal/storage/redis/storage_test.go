package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrinvite/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TabTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, "tab:abc:user", []byte(`{"username":"admin"}`))
	s.Require().NoError(err)

	value, err := s.storage.Get(s.ctx, "tab:abc:user")
	s.Require().NoError(err)
	s.Equal(`{"username":"admin"}`, string(value))
}

func (s *StorageSuite) TestKeysAreNamespaced() {
	_ = s.storage.Set(s.ctx, "tab:abc:user", []byte("v"))

	s.True(s.mini.Exists("qrinvite:tab:abc:user"))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, "tab:abc:user", []byte("v"))

	s.Require().NoError(s.storage.Delete(s.ctx, "tab:abc:user"))
	_, err := s.storage.Get(s.ctx, "tab:abc:user")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestTabTTLApplied() {
	_ = s.storage.Set(s.ctx, "tab:abc:user", []byte("v"))

	s.Equal(time.Hour, s.mini.TTL("qrinvite:tab:abc:user"))
}

func (s *StorageSuite) TestValuesExpireWithTab() {
	_ = s.storage.Set(s.ctx, "tab:abc:user", []byte("v"))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.Get(s.ctx, "tab:abc:user")
	s.ErrorIs(err, storage.ErrNotFound)
}
