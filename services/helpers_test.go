package services

import (
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"hotelfood/entity"
	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/logger"
	"hotelfood/pkg/metrics"
	"hotelfood/pkg/testutil"
	"hotelfood/repository"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.OrderEvent
}

func (n *recordingNotifier) Publish(ev entity.OrderEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) Events() []entity.OrderEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.OrderEvent(nil), n.events...)
}

type fixture struct {
	db       *gorm.DB
	store    *cartstore.MemoryStore
	notifier *recordingNotifier
	carts    *CartService
	orders   *OrderService
	menu     *MenuService
	dash     *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDB(t, testutil.NewDB(t))
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	menuRepo := repository.NewMenuRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	store := cartstore.NewMemoryStore(time.Hour)
	n := &recordingNotifier{}
	carts := NewCartService(store, menuRepo)

	return &fixture{
		db:       db,
		store:    store,
		notifier: n,
		carts:    carts,
		orders:   NewOrderService(db, orderRepo, store, n, metrics.New(), logger.Discard()),
		menu:     NewMenuService(menuRepo, catRepo),
		dash:     NewDashboardService(repository.NewDashboardRepository(db), orderRepo, menuRepo, catRepo),
	}
}

func intPtr(v int) *int { return &v }
