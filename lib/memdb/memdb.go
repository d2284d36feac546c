package memdb

import (
	"sync"

	"github.com/google/uuid"
)

// Table потокобезопасная коллекция записей с сохранением порядка вставки.
// Записи отдаются копиями, изменить состояние можно только через Update.
type Table[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
	idFn  func(T) string
	clone func(T) T
}

func NewTable[T any](idFn func(T) string, clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(rec T) T { return rec }
	}
	return &Table[T]{
		rows:  map[string]T{},
		idFn:  idFn,
		clone: clone,
	}
}

func NewID() string {
	return uuid.NewString()
}

// Insert добавляет запись, существующая запись с тем же id заменяется на месте
func (t *Table[T]) Insert(rec T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idFn(rec)
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(rec)
}

func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.rows[id]
	if !ok {
		var empty T
		return empty, false
	}
	return t.clone(rec), true
}

func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list := make([]T, 0, len(t.order))
	for _, id := range t.order {
		list = append(list, t.clone(t.rows[id]))
	}
	return list
}

// Find записи, удовлетворяющие условию, в порядке вставки
func (t *Table[T]) Find(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list := []T{}
	for _, id := range t.order {
		rec := t.rows[id]
		if match(rec) {
			list = append(list, t.clone(rec))
		}
	}
	return list
}

func (t *Table[T]) Update(id string, fn func(rec *T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.rows[id]
	if !ok {
		return false
	}
	fn(&rec)
	t.rows[id] = rec
	return true
}

// Mutate дает доступ ко всей коллекции под одной блокировкой.
// Срез передается в порядке вставки, изменения записей сохраняются.
func (t *Table[T]) Mutate(fn func(rows []T)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	fn(rows)
	for idx, id := range t.order {
		t.rows[id] = rows[idx]
	}
}

func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for idx, item := range t.order {
		if item == id {
			t.order = append(t.order[:idx], t.order[idx+1:]...)
			break
		}
	}
	return true
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}
