package world

import "testing"

func TestSchedulerDefersOneStep(t *testing.T) {
	s := NewScheduler()
	var ran []string

	s.RunLater(func() {
		ran = append(ran, "first")
		// Задача, добавленная во время Flush, должна ждать следующего шага
		s.RunLater(func() { ran = append(ran, "nested") })
	})

	if len(ran) != 0 {
		t.Fatal("задача выполнилась до Flush")
	}
	if n := s.Flush(); n != 1 {
		t.Errorf("ожидалась 1 задача, выполнено %d", n)
	}
	if len(ran) != 1 || s.Pending() != 1 {
		t.Fatalf("после первого шага: ran=%v pending=%d", ran, s.Pending())
	}

	s.Flush()
	if len(ran) != 2 || ran[1] != "nested" {
		t.Errorf("ожидалось выполнение вложенной задачи, получено %v", ran)
	}
	if s.Flush() != 0 {
		t.Error("очередь должна быть пуста")
	}
}

func TestEntityHelpers(t *testing.T) {
	creeper := &Entity{TypeID: CreeperTypeID, Charged: true}
	if !creeper.IsChargedCreeper() {
		t.Error("заряженный крипер не распознан")
	}
	if creeper.DisplayName() != "creeper" {
		t.Errorf("DisplayName: получено %q", creeper.DisplayName())
	}

	named := &Entity{TypeID: PlayerTypeID, NameTag: "Steve"}
	if !named.IsPlayer() || named.DisplayName() != "Steve" {
		t.Errorf("ожидался игрок Steve, получено %q", named.DisplayName())
	}

	var nilEntity *Entity
	if nilEntity.IsPlayer() || nilEntity.IsChargedCreeper() {
		t.Error("nil сущность не должна распознаваться")
	}
}

func TestPermutationWithStateIsImmutable(t *testing.T) {
	p := NewPermutation("cph:player_head_block", map[string]any{BlockFaceState: FaceUp})
	q := p.WithState("cph:head_rotation", 4)

	if _, ok := p.State("cph:head_rotation"); ok {
		t.Error("исходная перестановка изменилась")
	}
	if v, _ := q.State("cph:head_rotation"); v != 4 {
		t.Errorf("ожидалось 4, получено %v", v)
	}
	if v, _ := q.State(BlockFaceState); v != FaceUp {
		t.Errorf("состояние грани потеряно: %v", v)
	}
}
