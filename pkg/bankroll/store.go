package bankroll

import (
	"context"
	"errors"
	"os"
	"sync"

	"gopkg.in/yaml.v2"
	"ridethebus-server/internal/fileutil"
)

// Store persists a single bankroll value
type Store interface {
	// GetBankroll returns the balance and true, or false if nothing is stored yet
	GetBankroll(ctx context.Context) (int, bool, error)

	// SetBankroll persists the balance
	SetBankroll(ctx context.Context, balance int) error
}

// Deleter is a Store that can forget its balance
type Deleter interface {
	Delete(ctx context.Context) error
}

// MemoryStore keeps the balance in memory
type MemoryStore struct {
	lock    sync.Mutex
	balance int
	ok      bool
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithBalance returns an in-memory store that already holds balance
func NewMemoryStoreWithBalance(balance int) *MemoryStore {
	return &MemoryStore{balance: balance, ok: true}
}

// GetBankroll returns the stored balance
func (m *MemoryStore) GetBankroll(_ context.Context) (int, bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.balance, m.ok, nil
}

// SetBankroll stores the balance
func (m *MemoryStore) SetBankroll(_ context.Context, balance int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.balance = balance
	m.ok = true
	return nil
}

// Delete forgets the stored balance
func (m *MemoryStore) Delete(_ context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.balance = 0
	m.ok = false
	return nil
}

// FileStore keeps the balance in a small yaml document
type FileStore struct {
	lock     sync.Mutex
	filename string
}

type fileDocument struct {
	Balance int `yaml:"balance"`
}

// NewFileStore returns a store backed by filename
// The file is created on the first SetBankroll
func NewFileStore(filename string) *FileStore {
	return &FileStore{filename: filename}
}

// GetBankroll reads the balance from the file
func (f *FileStore) GetBankroll(_ context.Context) (int, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	b, err := os.ReadFile(f.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}

		return 0, false, err
	}

	var doc fileDocument
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return 0, false, err
	}

	return doc.Balance, true, nil
}

// SetBankroll atomically replaces the file
func (f *FileStore) SetBankroll(_ context.Context, balance int) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	b, err := yaml.Marshal(fileDocument{Balance: balance})
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(f.filename, b, 0o600)
}
