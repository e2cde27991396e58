package util

type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	defer func() {
		s.items = s.items[:lastIndex]
	}()
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}

// Queue is a FIFO counterpart to Stack, used for breadth-first walks
type Queue[A any] struct {
	items []A
	head  int
}

func NewQueue[A any](items ...A) *Queue[A] {
	q := &Queue[A]{}
	q.Push(items...)
	return q
}

func (q *Queue[A]) Push(vs ...A) {
	q.items = append(q.items, vs...)
}

func (q *Queue[A]) Pop() (ret A, ok bool) {
	if q.head >= len(q.items) {
		return ret, false
	}
	ret = q.items[q.head]
	var zero A
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}
	return ret, true
}

func (q *Queue[A]) Len() int {
	return len(q.items) - q.head
}
