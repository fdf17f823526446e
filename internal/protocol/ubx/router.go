package ubx

import "sync"

// Handler 帧处理函数
type Handler func(f *Frame) error

// Table 路由表：先按完整身份匹配，再按类别兜底，最后走默认处理器
type Table struct {
	mu       sync.RWMutex
	byID     map[ID]Handler
	byClass  map[Class]Handler
	fallback Handler
}

func NewTable() *Table {
	return &Table{byID: make(map[ID]Handler), byClass: make(map[Class]Handler)}
}

// Register 注册某个身份的处理器
func (t *Table) Register(id ID, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID[id] = h
}

// RegisterClass 注册类别级处理器
func (t *Table) RegisterClass(c Class, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byClass[c] = h
}

// SetDefault 设置未命中时的处理器
func (t *Table) SetDefault(h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = h
}

// Route 分派一帧；无匹配处理器时返回 nil
func (t *Table) Route(f *Frame) error {
	id := f.ID()
	t.mu.RLock()
	h, ok := t.byID[id]
	if !ok {
		h, ok = t.byClass[id.Class()]
	}
	if !ok {
		h = t.fallback
	}
	t.mu.RUnlock()
	if h == nil {
		return nil
	}
	return h(f)
}
