package screen

import (
	"sync"
	"sync/atomic"
)

// State guarda o estado local de uma tela e notifica inscritos a cada mudança.
// Os inscritos recebem cópias; o estado só muda via Set e Update.
type State[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   map[int]func(T)
	nextID int
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: map[int]func(T){}}
}

func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *State[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update aplica fn sobre o valor atual sob lock e notifica com o resultado
func (s *State[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.value = fn(s.value)
	value := s.value
	subs := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
	return value
}

// Subscribe registra fn e retorna a função que cancela a inscrição
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Visit marca a presença do usuário em uma tela. Respostas de uma visita
// encerrada são descartadas comparando o token obtido em Enter.
type Visit struct {
	gen    atomic.Uint64
	active atomic.Bool
}

// Enter inicia uma nova visita e retorna seu token
func (v *Visit) Enter() uint64 {
	v.active.Store(true)
	return v.gen.Add(1)
}

func (v *Visit) Leave() {
	v.active.Store(false)
	v.gen.Add(1)
}

// Token retorna o token da visita atual
func (v *Visit) Token() uint64 {
	return v.gen.Load()
}

// Current indica se token pertence à visita em andamento
func (v *Visit) Current(token uint64) bool {
	return v.active.Load() && v.gen.Load() == token
}

func (v *Visit) Active() bool {
	return v.active.Load()
}
