package outbound

import (
	"container/heap"
	"sort"
)

// cmdHeap 按 (优先级, 提交序号) 排序
type cmdHeap []*Command

func (h cmdHeap) Len() int { return len(h) }
func (h cmdHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}
func (h cmdHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *cmdHeap) Push(x any)   { *h = append(*h, x.(*Command)) }
func (h *cmdHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return c
}

// removeIf 移除满足条件的元素并返回
func (h *cmdHeap) removeIf(fn func(*Command) bool) []*Command {
	var removed []*Command
	kept := (*h)[:0]
	for _, c := range *h {
		if fn(c) {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	*h = kept
	heap.Init(h)
	return removed
}

func sortBySeq(cs []*Command) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].seq < cs[j].seq })
}
