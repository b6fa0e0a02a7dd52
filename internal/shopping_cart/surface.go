package shopping_cart

import "sync"

// Badge счетчик на иконке корзины, скрыт при нуле
type Badge struct {
	Count  int  `json:"count"`
	Hidden bool `json:"hidden"`
}

// Modal модальное окно корзины
type Modal struct {
	Open bool `json:"open"`
	View View `json:"view"`
}

// Screen то, что видит покупатель
type Screen struct {
	Badge        Badge `json:"badge"`
	Modal        Modal `json:"modal"`
	ScrollLocked bool  `json:"scroll_locked"`
}

// ScreenState реализация Surface в памяти, одна на покупателя
type ScreenState struct {
	mu     sync.RWMutex
	screen Screen
}

func NewScreenState() *ScreenState {
	return &ScreenState{
		screen: Screen{
			Badge: Badge{Hidden: true},
			Modal: Modal{View: RenderView(NewCart())},
		},
	}
}

func (s *ScreenState) UpdateCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Badge = Badge{Count: count, Hidden: count == 0}
}

func (s *ScreenState) RenderModal(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Modal.View = view
}

// ShowModal открывает окно и блокирует прокрутку страницы
func (s *ScreenState) ShowModal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Modal.Open = true
	s.screen.ScrollLocked = true
}

func (s *ScreenState) HideModal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Modal.Open = false
	s.screen.ScrollLocked = false
}

// Snapshot копия текущего экрана
func (s *ScreenState) Snapshot() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()

	screen := s.screen
	screen.Modal.View.Rows = make([]Row, len(s.screen.Modal.View.Rows))
	copy(screen.Modal.View.Rows, s.screen.Modal.View.Rows)
	return screen
}
