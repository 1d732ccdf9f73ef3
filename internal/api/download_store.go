package api

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const downloadTTL = 10 * time.Minute

type download struct {
	filePath    string
	filename    string
	removeAfter bool
	expiresAt   time.Time
}

type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
	}
}

func (s *downloadStore) put(item download, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.NewString()
	item.expiresAt = time.Now().Add(ttl)
	s.items[token] = item
	return token
}

// take 取出并作废 token
func (s *downloadStore) take(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	delete(s.items, token)
	return v, true
}

// purgeExpiredLocked 清理过期 token；一次性文件随 token 一起删除
func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			if v.removeAfter {
				_ = os.Remove(v.filePath)
			}
		}
	}
}
