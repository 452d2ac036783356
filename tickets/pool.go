package tickets

import (
	"errors"
	"sort"

	"github.com/yeremiapane/stall-pos/models"
)

// MaxTickets is how many numbered tickets each item kind has. Number 1
// is handed out first; a kind with all ten numbers on open orders is
// sold out until one is served.
const MaxTickets = 10

var ErrExhausted = errors.New("no ticket numbers left for this item")

// Pool tracks the free ticket numbers per item kind, ascending. It is
// derived state: always rebuilt from the open-order set, never carried
// across a refresh.
type Pool struct {
	free map[string][]int
}

// NewPool -> a pool with every number free for the given kinds
func NewPool(kinds []string) *Pool {
	p := &Pool{free: make(map[string][]int, len(kinds))}
	for _, kind := range kinds {
		nums := make([]int, 0, MaxTickets)
		for n := 1; n <= MaxTickets; n++ {
			nums = append(nums, n)
		}
		p.free[kind] = nums
	}
	return p
}

// Compute -> the pool derived from the open orders: for each kind the
// ascending complement of its open ticket numbers within 1..MaxTickets.
// Computing twice over the same orders yields the same pool.
func Compute(kinds []string, orders []models.Order) *Pool {
	used := make(map[string]map[int]bool, len(kinds))
	for _, kind := range kinds {
		used[kind] = make(map[int]bool)
	}
	for _, o := range orders {
		if _, ok := used[o.ItemKind]; !ok {
			continue
		}
		used[o.ItemKind][o.TicketNumber] = true
	}

	p := &Pool{free: make(map[string][]int, len(kinds))}
	for _, kind := range kinds {
		nums := make([]int, 0, MaxTickets)
		for n := 1; n <= MaxTickets; n++ {
			if !used[kind][n] {
				nums = append(nums, n)
			}
		}
		p.free[kind] = nums
	}
	return p
}

// Free -> copy of the free numbers for a kind, ascending
func (p *Pool) Free(kind string) []int {
	nums := p.free[kind]
	out := make([]int, len(nums))
	copy(out, nums)
	return out
}

// Remaining -> how many numbers are still free for a kind
func (p *Pool) Remaining(kind string) int {
	return len(p.free[kind])
}

// Allocate takes the lowest free number for a kind. When the kind is
// sold out it returns ErrExhausted and the pool is left untouched.
func (p *Pool) Allocate(kind string) (int, error) {
	nums, ok := p.free[kind]
	if !ok || len(nums) == 0 {
		return 0, ErrExhausted
	}
	n := nums[0]
	p.free[kind] = nums[1:]
	return n, nil
}

// Release puts a number back into a kind's pool, keeping it sorted.
// Numbers outside 1..MaxTickets and numbers already free are ignored,
// so the pool stays duplicate-free.
func (p *Pool) Release(kind string, n int) {
	if n < 1 || n > MaxTickets {
		return
	}
	nums, ok := p.free[kind]
	if !ok {
		return
	}
	i := sort.SearchInts(nums, n)
	if i < len(nums) && nums[i] == n {
		return
	}
	nums = append(nums, 0)
	copy(nums[i+1:], nums[i:])
	nums[i] = n
	p.free[kind] = nums
}
