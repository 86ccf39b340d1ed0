package colosseum

import "bytes"
import "math"
import "math/rand"
import "sort"
import "strings"
import "testing"
import "unsafe"

import "github.com/bnclabs/colosseum/api"
import "github.com/bnclabs/colosseum/llrb"
import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func testsettings() s.Settings {
	return s.Settings{"arena.capacity": int64(64 * 1024 * 1024), "validate": true}
}

func newtestcol(t *testing.T, name string) *Colosseum {
	t.Helper()
	col := NewColosseum(name, testsettings())
	t.Cleanup(col.Destroy)
	return col
}

func TestColosseumScenario(t *testing.T) {
	col := newtestcol(t, "scenario")

	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	require.NoError(t, col.BuyGladiator(20, 1, 9))

	top, err := col.GetTopGladiator(1)
	require.NoError(t, err)
	assert.Equal(t, 20, top)
	top, err = col.GetTopGladiator(-1)
	require.NoError(t, err)
	assert.Equal(t, 20, top)

	require.NoError(t, col.LevelUp(10, 10))
	top, err = col.GetTopGladiator(1)
	require.NoError(t, err)
	assert.Equal(t, 10, top)

	ids, err := col.GetAllGladiatorsByLevel(1)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 10}, ids)

	ids, err = col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 10}, ids)

	g, ok := col.Gladiator(10)
	require.True(t, ok)
	assert.Equal(t, Gladiator{ID: 10, Level: 15, Trainer: 1}, g)
	assert.Equal(t, int64(2), col.Count())
}

func TestColosseumInvalidInput(t *testing.T) {
	col := newtestcol(t, "invalid")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))

	invalids := []error{
		col.AddTrainer(0),
		col.AddTrainer(-1),
		col.BuyGladiator(0, 1, 1),
		col.BuyGladiator(11, 0, 1),
		col.BuyGladiator(11, 1, 0),
		col.BuyGladiator(11, 1, -3),
		col.FreeGladiator(0),
		col.LevelUp(0, 1),
		col.LevelUp(10, 0),
		col.LevelUp(10, -1),
		col.UpgradeGladiator(0, 1),
		col.UpgradeGladiator(10, -1),
		col.UpdateLevels(0, 2),
		col.UpdateLevels(2, 0),
	}
	for i, err := range invalids {
		assert.Equal(t, api.InvalidInput, api.StatusOf(err), "case %v", i)
	}
	_, err := col.GetTopGladiator(0)
	assert.ErrorIs(t, err, api.ErrorInvalidInput)
	ids, err := col.GetAllGladiatorsByLevel(0)
	assert.ErrorIs(t, err, api.ErrorInvalidInput)
	assert.Nil(t, ids)

	// invalid arguments take precedence over missing state.
	assert.ErrorIs(t, col.BuyGladiator(10, 99, 0), api.ErrorInvalidInput)

	g, ok := col.Gladiator(10)
	require.True(t, ok)
	assert.Equal(t, 5, g.Level)
	assert.Equal(t, int64(1), col.Count())
}

func TestColosseumFailures(t *testing.T) {
	col := newtestcol(t, "failures")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))

	trainers := col.Trainers()
	ids, err := col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.ErrorIs(t, col.AddTrainer(1), api.ErrorTrainerExists)
	assert.Equal(t, trainers, col.Trainers())
	after, err := col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.Equal(t, ids, after)

	assert.ErrorIs(t, col.BuyGladiator(10, 1, 3), api.ErrorGladiatorExists)
	assert.ErrorIs(t, col.BuyGladiator(11, 2, 3), api.ErrorTrainerMissing)
	assert.ErrorIs(t, col.FreeGladiator(11), api.ErrorGladiatorMissing)
	assert.ErrorIs(t, col.LevelUp(11, 1), api.ErrorGladiatorMissing)
	assert.ErrorIs(t, col.UpgradeGladiator(11, 12), api.ErrorGladiatorMissing)
	assert.ErrorIs(t, col.UpgradeGladiator(10, 10), api.ErrorSameIdentifier)
	_, err = col.GetTopGladiator(2)
	assert.ErrorIs(t, err, api.ErrorTrainerMissing)
	_, err = col.GetAllGladiatorsByLevel(2)
	assert.ErrorIs(t, err, api.ErrorTrainerMissing)

	// missing old identifier is reported before same identifier.
	assert.ErrorIs(t, col.UpgradeGladiator(11, 11), api.ErrorGladiatorMissing)

	require.NoError(t, col.BuyGladiator(20, 1, 5))
	assert.ErrorIs(t, col.UpgradeGladiator(10, 20), api.ErrorGladiatorExists)

	assert.Equal(t, []int{1}, col.Trainers())
	ids, err = col.GetAllGladiatorsByLevel(1)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, ids)

	stats := col.Stats()
	assert.Equal(t, int64(11), stats["n_failures"])
	assert.Equal(t, int64(2), stats["n_buys"])
}

func TestColosseumEmpty(t *testing.T) {
	col := newtestcol(t, "empty")
	require.NoError(t, col.AddTrainer(1))

	_, err := col.GetTopGladiator(1)
	assert.ErrorIs(t, err, api.ErrorEmptyIndex)
	assert.Equal(t, api.Failure, api.StatusOf(err))
	_, err = col.GetTopGladiator(-1)
	assert.ErrorIs(t, err, api.ErrorEmptyIndex)

	ids, err := col.GetAllGladiatorsByLevel(1)
	require.NoError(t, err)
	assert.Nil(t, ids)
	ids, err = col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.Nil(t, ids)

	require.NoError(t, col.UpdateLevels(1, 3))
}

func TestColosseumFreeGladiator(t *testing.T) {
	col := newtestcol(t, "free")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.AddTrainer(2))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	require.NoError(t, col.BuyGladiator(20, 2, 9))

	require.NoError(t, col.FreeGladiator(20))
	_, ok := col.Gladiator(20)
	assert.False(t, ok)
	_, err := col.GetTopGladiator(2)
	assert.ErrorIs(t, err, api.ErrorEmptyIndex)
	top, err := col.GetTopGladiator(-1)
	require.NoError(t, err)
	assert.Equal(t, 10, top)

	// identifier can be reused, by any trainer.
	require.NoError(t, col.BuyGladiator(20, 1, 1))
	ids, err := col.GetAllGladiatorsByLevel(1)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 10}, ids)
}

func TestColosseumLevelUp(t *testing.T) {
	col := newtestcol(t, "levelup")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))

	require.NoError(t, col.LevelUp(10, 3))
	require.NoError(t, col.LevelUp(10, 4))
	g, _ := col.Gladiator(10)
	assert.Equal(t, 12, g.Level)

	err := col.LevelUp(10, math.MaxInt)
	assert.ErrorIs(t, err, api.ErrorInvalidInput)
	g, _ = col.Gladiator(10)
	assert.Equal(t, 12, g.Level)

	require.NoError(t, col.LevelUp(10, math.MaxInt-12))
	g, _ = col.Gladiator(10)
	assert.Equal(t, math.MaxInt, g.Level)
}

func TestColosseumUpgrade(t *testing.T) {
	col := newtestcol(t, "upgrade")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.AddTrainer(2))
	require.NoError(t, col.BuyGladiator(10, 2, 5))
	require.NoError(t, col.BuyGladiator(20, 2, 5))

	require.NoError(t, col.UpgradeGladiator(10, 30))
	_, ok := col.Gladiator(10)
	assert.False(t, ok)
	g, ok := col.Gladiator(30)
	require.True(t, ok)
	assert.Equal(t, Gladiator{ID: 30, Level: 5, Trainer: 2}, g)

	// tie on level broken by larger identifier.
	top, err := col.GetTopGladiator(2)
	require.NoError(t, err)
	assert.Equal(t, 30, top)
	ids, err := col.GetAllGladiatorsByLevel(2)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 30}, ids)
	ids, err = col.GetAllGladiatorsByLevel(1)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestColosseumUpdateLevels(t *testing.T) {
	col := newtestcol(t, "update")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.AddTrainer(2))
	require.NoError(t, col.BuyGladiator(3, 1, 10))
	require.NoError(t, col.BuyGladiator(4, 1, 3))
	require.NoError(t, col.BuyGladiator(6, 2, 2))
	require.NoError(t, col.BuyGladiator(7, 2, 8))

	require.NoError(t, col.UpdateLevels(2, 5))
	levels := map[int]int{3: 10, 4: 15, 6: 10, 7: 8}
	for id, level := range levels {
		g, ok := col.Gladiator(id)
		require.True(t, ok)
		assert.Equal(t, level, g.Level, "gladiator %v", id)
	}
	ids, err := col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3, 6, 4}, ids)
	top, err := col.GetTopGladiator(2)
	require.NoError(t, err)
	assert.Equal(t, 6, top)

	// factor 1 is a no-op success.
	require.NoError(t, col.UpdateLevels(1, 1))
	ids2, err := col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	assert.Equal(t, ids, ids2)

	// overflow on any qualifying gladiator leaves all untouched.
	require.NoError(t, col.LevelUp(3, math.MaxInt/2))
	err = col.UpdateLevels(1, 2)
	assert.ErrorIs(t, err, api.ErrorInvalidInput)
	for id, level := range map[int]int{4: 15, 6: 10, 7: 8} {
		g, _ := col.Gladiator(id)
		assert.Equal(t, level, g.Level, "gladiator %v", id)
	}
}

func TestColosseumOutofMemory(t *testing.T) {
	tnode := llrb.Nodesize[*Trainer]()
	gnode := llrb.Nodesize[Gladiator]()
	itemsize := int64(unsafe.Sizeof(Gladiator{}))
	// room for one trainer, two gladiators, and neither another
	// trainer nor an export of two gladiators.
	spare := 2 * itemsize
	if tnode < spare {
		spare = tnode
	}
	capacity := tnode + (6 * gnode) + spare - 1
	setts := s.Settings{"arena.capacity": capacity, "validate": true}
	col := NewColosseum("oom", setts)
	defer col.Destroy()

	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	require.NoError(t, col.BuyGladiator(20, 1, 7))

	err := col.BuyGladiator(30, 1, 9)
	assert.ErrorIs(t, err, api.ErrorOutofMemory)
	assert.Equal(t, api.AllocationError, api.StatusOf(err))
	_, ok := col.Gladiator(30)
	assert.False(t, ok)

	assert.ErrorIs(t, col.AddTrainer(2), api.ErrorOutofMemory)
	assert.Equal(t, []int{1}, col.Trainers())

	ids, err := col.GetAllGladiatorsByLevel(1)
	assert.ErrorIs(t, err, api.ErrorOutofMemory)
	assert.Nil(t, ids)
	_, err = col.GetAllGladiatorsByLevel(-1)
	assert.ErrorIs(t, err, api.ErrorOutofMemory)

	// relevelling does not need fresh memory.
	require.NoError(t, col.UpdateLevels(1000, 2))
	require.NoError(t, col.UpdateLevels(1, 1))
	require.NoError(t, col.UpdateLevels(10, 2))
	g, _ := col.Gladiator(10)
	assert.Equal(t, 10, g.Level)
	g, _ = col.Gladiator(20)
	assert.Equal(t, 14, g.Level)

	// re-keying does not need fresh memory.
	require.NoError(t, col.LevelUp(10, 10))
	require.NoError(t, col.UpgradeGladiator(20, 30))
	top, err := col.GetTopGladiator(-1)
	require.NoError(t, err)
	assert.Equal(t, 10, top)

	// freeing makes room again.
	require.NoError(t, col.FreeGladiator(30))
	require.NoError(t, col.BuyGladiator(40, 1, 1))
	col.Validate()

	stats := col.Stats()
	assert.Equal(t, int64(4), stats["n_ooms"])
}

func TestColosseumUpdateLevelsFullArena(t *testing.T) {
	tnode := llrb.Nodesize[*Trainer]()
	gnode := llrb.Nodesize[Gladiator]()
	// exactly one trainer and two gladiators, nothing to spare.
	capacity := tnode + (6 * gnode)
	setts := s.Settings{"arena.capacity": capacity, "validate": true}
	col := NewColosseum("fullarena", setts)
	defer col.Destroy()

	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	require.NoError(t, col.BuyGladiator(20, 1, 7))
	_, _, available := col.arena.Info()
	require.Equal(t, int64(0), available)

	// no qualifiers, unit factor, and every gladiator qualifying.
	require.NoError(t, col.UpdateLevels(1000, 2))
	require.NoError(t, col.UpdateLevels(1, 1))
	require.NoError(t, col.UpdateLevels(1, 3))

	for id, level := range map[int]int{10: 15, 20: 21} {
		g, ok := col.Gladiator(id)
		require.True(t, ok)
		assert.Equal(t, level, g.Level, "gladiator %v", id)
	}
	top, err := col.GetTopGladiator(1)
	require.NoError(t, err)
	assert.Equal(t, 20, top)
	_, _, available = col.arena.Info()
	assert.Equal(t, int64(0), available)
	assert.Equal(t, int64(0), col.Stats()["n_ooms"])
}

func TestColosseumRandom(t *testing.T) {
	col := newtestcol(t, "random")
	rnd := rand.New(rand.NewSource(42))

	// reference model, identifier -> {level, trainer}
	model := map[int]Gladiator{}
	trainers := map[int]bool{}
	for i := 0; i < 5000; i++ {
		id := rnd.Intn(200) + 1
		switch op := rnd.Intn(6); op {
		case 0:
			trid := rnd.Intn(10) + 1
			err := col.AddTrainer(trid)
			if trainers[trid] {
				require.ErrorIs(t, err, api.ErrorTrainerExists)
			} else {
				require.NoError(t, err)
				trainers[trid] = true
			}
		case 1:
			trid, level := rnd.Intn(10)+1, rnd.Intn(100)+1
			err := col.BuyGladiator(id, trid, level)
			if _, ok := model[id]; ok {
				require.ErrorIs(t, err, api.ErrorGladiatorExists)
			} else if !trainers[trid] {
				require.ErrorIs(t, err, api.ErrorTrainerMissing)
			} else {
				require.NoError(t, err)
				model[id] = Gladiator{ID: id, Level: level, Trainer: trid}
			}
		case 2:
			err := col.FreeGladiator(id)
			if _, ok := model[id]; ok {
				require.NoError(t, err)
				delete(model, id)
			} else {
				require.ErrorIs(t, err, api.ErrorGladiatorMissing)
			}
		case 3:
			delta := rnd.Intn(10) + 1
			err := col.LevelUp(id, delta)
			if g, ok := model[id]; ok {
				require.NoError(t, err)
				g.Level += delta
				model[id] = g
			} else {
				require.ErrorIs(t, err, api.ErrorGladiatorMissing)
			}
		case 4:
			newid := rnd.Intn(200) + 1
			err := col.UpgradeGladiator(id, newid)
			g, ok := model[id]
			_, exists := model[newid]
			switch {
			case !ok:
				require.ErrorIs(t, err, api.ErrorGladiatorMissing)
			case id == newid:
				require.ErrorIs(t, err, api.ErrorSameIdentifier)
			case exists:
				require.ErrorIs(t, err, api.ErrorGladiatorExists)
			default:
				require.NoError(t, err)
				delete(model, id)
				g.ID = newid
				model[newid] = g
			}
		case 5:
			if rnd.Intn(50) > 0 {
				continue
			}
			code := rnd.Intn(7) + 1
			require.NoError(t, col.UpdateLevels(code, 2))
			for gid, g := range model {
				if gid%code == 0 {
					g.Level *= 2
					model[gid] = g
				}
			}
		}
	}

	require.Equal(t, int64(len(model)), col.Count())
	for id, g := range model {
		x, ok := col.Gladiator(id)
		require.True(t, ok)
		require.Equal(t, g, x)
	}

	refs := make([]Gladiator, 0, len(model))
	for _, g := range model {
		refs = append(refs, g)
	}
	sort.Slice(refs, func(i, j int) bool { return bylevel(refs[i], refs[j]) < 0 })
	ids, err := col.GetAllGladiatorsByLevel(-1)
	require.NoError(t, err)
	require.Equal(t, len(refs), len(ids))
	for i, g := range refs {
		require.Equal(t, g.ID, ids[i])
	}

	for trid := range trainers {
		ids, err := col.GetAllGladiatorsByLevel(trid)
		require.NoError(t, err)
		prev := Gladiator{}
		for _, id := range ids {
			g := model[id]
			require.Equal(t, trid, g.Trainer)
			require.True(t, bylevel(prev, g) < 0)
			prev = g
		}
		if top, err := col.GetTopGladiator(trid); len(ids) > 0 {
			require.NoError(t, err)
			require.Equal(t, ids[len(ids)-1], top)
		} else {
			require.ErrorIs(t, err, api.ErrorEmptyIndex)
		}
	}
	col.Validate()
}

func TestColosseumDotdump(t *testing.T) {
	col := newtestcol(t, "dotdump")
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	require.NoError(t, col.BuyGladiator(20, 1, 7))

	buf := bytes.NewBuffer(nil)
	col.Dotdump(buf)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph llrb {"))
	assert.Contains(t, out, "{10,5}")
}

func TestColosseumDestroy(t *testing.T) {
	col := NewColosseum("destroy", testsettings())
	require.NoError(t, col.AddTrainer(1))
	require.NoError(t, col.BuyGladiator(10, 1, 5))
	col.Destroy()

	_, allocated, _ := col.arena.Info()
	assert.Equal(t, int64(0), allocated)
	assert.Panics(t, col.Destroy)
}

func TestDefaultsettings(t *testing.T) {
	setts := Defaultsettings()
	capacity := setts.Int64("arena.capacity")
	if capacity <= 0 {
		t.Errorf("expected positive capacity, got %v", capacity)
	}
	if setts.Bool("validate") {
		t.Errorf("expected validate to be disabled")
	}
}
