package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// Store хранилище в памяти процесса.
// Реализует все контракты репозиториев и менеджер транзакций:
// транзакции выполняются строго по одной, при ошибке состояние откатывается.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	nextID int64
	now    func() time.Time

	bookings         map[int64]*domain.Booking
	windows          map[int64]*domain.AvailabilityWindow
	blockedDates     map[int64]*domain.BlockedDate
	blockedIntervals map[int64]*domain.BlockedInterval
	providers        map[int64]*domain.Provider
	services         map[int64]*domain.ProviderService
	pets             map[int64]*domain.Pet
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		now:              time.Now,
		bookings:         make(map[int64]*domain.Booking),
		windows:          make(map[int64]*domain.AvailabilityWindow),
		blockedDates:     make(map[int64]*domain.BlockedDate),
		blockedIntervals: make(map[int64]*domain.BlockedInterval),
		providers:        make(map[int64]*domain.Provider),
		services:         make(map[int64]*domain.ProviderService),
		pets:             make(map[int64]*domain.Pet),
	}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Availability возвращает репозиторий расписания и блокировок
func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{store: s}
}

// Providers возвращает репозиторий провайдеров и их услуг
func (s *Store) Providers() *ProviderRepository {
	return &ProviderRepository{store: s}
}

// Pets возвращает репозиторий питомцев
func (s *Store) Pets() *PetRepository {
	return &PetRepository{store: s}
}

// AddProvider добавляет провайдера; ID выдаётся, если не задан
func (s *Store) AddProvider(p domain.Provider) *domain.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	} else {
		s.reserveID(p.ID)
	}
	s.providers[p.ID] = &p
	return clone(&p)
}

// AddService добавляет услугу провайдера
func (s *Store) AddService(svc domain.ProviderService) *domain.ProviderService {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	} else {
		s.reserveID(svc.ID)
	}
	s.services[svc.ID] = &svc
	return clone(&svc)
}

// AddPet добавляет питомца
func (s *Store) AddPet(p domain.Pet) *domain.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	} else {
		s.reserveID(p.ID)
	}
	s.pets[p.ID] = &p
	return clone(&p)
}

// id выдаёт следующий идентификатор; вызывается под s.mu
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) reserveID(id int64) {
	if id > s.nextID {
		s.nextID = id
	}
}

type txKey struct{}

// TxManager менеджер транзакций поверх Store
type TxManager struct {
	store *Store
}

// TxManager возвращает менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции; все транзакции Store уже сериализованы
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.restore(snap)
			panic(p)
		}
		if err != nil {
			m.store.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

type snapshot struct {
	nextID           int64
	bookings         map[int64]*domain.Booking
	windows          map[int64]*domain.AvailabilityWindow
	blockedDates     map[int64]*domain.BlockedDate
	blockedIntervals map[int64]*domain.BlockedInterval
}

// snapshot запоминает изменяемые таблицы.
// Записи не мутируются на месте (Update заменяет указатель), поэтому достаточно копии map.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		nextID:           s.nextID,
		bookings:         maps.Clone(s.bookings),
		windows:          maps.Clone(s.windows),
		blockedDates:     maps.Clone(s.blockedDates),
		blockedIntervals: maps.Clone(s.blockedIntervals),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID = snap.nextID
	s.bookings = snap.bookings
	s.windows = snap.windows
	s.blockedDates = snap.blockedDates
	s.blockedIntervals = snap.blockedIntervals
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// write выполняет изменение под блокировкой данных.
// Вне транзакции запись дополнительно ждёт txMu, чтобы откат чужой транзакции её не затёр.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
