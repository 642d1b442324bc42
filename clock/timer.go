package clock

import (
	"github.com/fixkme/ticktimer/tick"
	"github.com/fixkme/ticktimer/timer"
)

type Promise struct {
	TimerId int64
	NowTick tick.Tick // 触发时的采样时刻
	Skipped tick.Tick // 本次触发前错过的周期数
	Data    any
}

// 周期任务
// receiver和batch 两种投递方式是互斥的，选择其中一个
// 如果batch可用的话，默认优先使用batch，否则使用receiver
type _Timer struct {
	id         int64                            // ID
	pt         timer.PeriodicTimer[tick.Source] // 周期定时器
	data       any                              // 数据
	receiver   chan<- *Promise                  // 处理器
	batch      chan<- []*Promise                // 批量处理器
	prev, next *_Timer                          // 双向链表
}

func (t *_Timer) promise(now tick.Tick) *Promise {
	return &Promise{
		TimerId: t.id,
		NowTick: now,
		Skipped: t.pt.Skipped(),
		Data:    t.data,
	}
}

// _List 按注册顺序保存任务, 每个周期按此顺序轮询
type _List struct {
	root *_Timer //哨兵
	size int
}

func newTimerList() *_List {
	l := new(_List)
	l.root = new(_Timer)
	l.root.prev = l.root
	l.root.next = l.root
	return l
}

func (l *_List) PushBack(t *_Timer) {
	tail := l.root.prev
	tail.next = t
	t.prev = tail
	t.next = l.root
	l.root.prev = t
	l.size++
}

// Remove 从链表中移除指定节点
func (l *_List) Remove(t *_Timer) bool {
	if t == l.root || t.prev == nil || t.next == nil {
		return false
	}
	t.prev.next = t.next
	t.next.prev = t.prev
	t.prev = nil
	t.next = nil
	l.size--
	return true
}

func (l *_List) Len() int {
	return l.size
}

// Range 遍历链表中的节点, fn不能修改链表
func (l *_List) Range(fn func(t *_Timer) bool) {
	for t := l.root.next; t != l.root; t = t.next {
		if !fn(t) {
			break
		}
	}
}
