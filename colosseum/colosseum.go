package colosseum

import "fmt"
import "io"
import "math"

import "github.com/bnclabs/colosseum/api"
import "github.com/bnclabs/colosseum/llrb"
import "github.com/bnclabs/colosseum/malloc"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

// Colosseum registry of trainers and gladiators.
type Colosseum struct {
	colstats

	name     string
	arena    *malloc.Arena
	byid     *llrb.LLRB[Gladiator] // id -> {level, trainer}
	bylevel  *llrb.LLRB[Gladiator] // {level, id}
	trainers *TrainerDirectory
	dead     bool

	// settings
	validate  bool
	setts     s.Settings
	logprefix string
}

// NewColosseum create an empty registry. Settings not supplied by
// `setts` are picked from Defaultsettings().
func NewColosseum(name string, setts s.Settings) *Colosseum {
	col := &Colosseum{name: name}
	col.logprefix = fmt.Sprintf("COLOSSEUM [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	col.readsettings(setts)

	arenasetts := malloc.Defaultsettings(setts.Int64("arena.capacity"))
	col.arena = malloc.NewArena(arenasetts)
	col.byid = llrb.NewLLRB[Gladiator](name+"-byid", byid, col.arena)
	col.bylevel = llrb.NewLLRB[Gladiator](name+"-bylevel", bylevel, col.arena)
	col.trainers = NewTrainerDirectory(name, col.arena)

	capacity, _, _ := col.arena.Info()
	infof("%v started with arena %v\n", col.logprefix, humanize.Bytes(uint64(capacity)))
	return col
}

func (col *Colosseum) readsettings(setts s.Settings) {
	col.validate = setts.Bool("validate")
	col.setts = setts
}

// ID return the name of this registry.
func (col *Colosseum) ID() string {
	return col.name
}

// Count return the number of gladiators in the registry.
func (col *Colosseum) Count() int64 {
	return col.byid.Count()
}

// Trainers return all trainer identifiers in ascending order.
func (col *Colosseum) Trainers() []int {
	return col.trainers.Trainers()
}

// Gladiator return the gladiator indexed under `id`, along with its
// current level and trainer.
func (col *Colosseum) Gladiator(id int) (Gladiator, bool) {
	return col.byid.Get(Gladiator{ID: id})
}

// AddTrainer register trainer `id`.
func (col *Colosseum) AddTrainer(id int) error {
	if id <= 0 {
		return col.outcome("AddTrainer", api.ErrorInvalidInput)
	}
	if col.trainers.Has(id) {
		return col.outcome("AddTrainer", api.ErrorTrainerExists)
	}
	if !col.arena.Fits(col.trainers.Nodesize()) {
		return col.outcome("AddTrainer", api.ErrorOutofMemory)
	}
	if err := col.trainers.AddTrainer(id); err != nil {
		panic(fmt.Errorf("AddTrainer(): trainer %v: %v", id, err))
	}
	col.n_trainers++
	return col.outcome("AddTrainer", nil)
}

// BuyGladiator add gladiator `id` at `level` to trainer `trainerID`.
func (col *Colosseum) BuyGladiator(id, trainerID, level int) error {
	if id <= 0 || trainerID <= 0 || level <= 0 {
		return col.outcome("BuyGladiator", api.ErrorInvalidInput)
	}
	if col.byid.Has(Gladiator{ID: id}) {
		return col.outcome("BuyGladiator", api.ErrorGladiatorExists)
	}
	if !col.trainers.Has(trainerID) {
		return col.outcome("BuyGladiator", api.ErrorTrainerMissing)
	}
	if !col.arena.Fits(col.gladiatorsize()...) {
		return col.outcome("BuyGladiator", api.ErrorOutofMemory)
	}
	col.index(Gladiator{ID: id, Level: level, Trainer: trainerID})
	col.n_buys++
	return col.outcome("BuyGladiator", nil)
}

// FreeGladiator remove gladiator `id` from the registry.
func (col *Colosseum) FreeGladiator(id int) error {
	if id <= 0 {
		return col.outcome("FreeGladiator", api.ErrorInvalidInput)
	}
	g, ok := col.byid.Get(Gladiator{ID: id})
	if !ok {
		return col.outcome("FreeGladiator", api.ErrorGladiatorMissing)
	}
	col.unindex(g)
	col.n_frees++
	return col.outcome("FreeGladiator", nil)
}

// LevelUp increase gladiator's level by `delta`.
func (col *Colosseum) LevelUp(id, delta int) error {
	if id <= 0 || delta <= 0 {
		return col.outcome("LevelUp", api.ErrorInvalidInput)
	}
	g, ok := col.byid.Get(Gladiator{ID: id})
	if !ok {
		return col.outcome("LevelUp", api.ErrorGladiatorMissing)
	}
	if delta > math.MaxInt-g.Level {
		err := fmt.Errorf("level %v + %v overflows: %w", g.Level, delta, api.ErrorInvalidInput)
		return col.outcome("LevelUp", err)
	}
	col.unindex(g)
	g.Level += delta
	col.index(g)
	col.n_levelups++
	return col.outcome("LevelUp", nil)
}

// UpgradeGladiator re-key gladiator `oldID` as `newID`, keeping its
// level and trainer.
func (col *Colosseum) UpgradeGladiator(oldID, newID int) error {
	if oldID <= 0 || newID <= 0 {
		return col.outcome("UpgradeGladiator", api.ErrorInvalidInput)
	}
	g, ok := col.byid.Get(Gladiator{ID: oldID})
	if !ok {
		return col.outcome("UpgradeGladiator", api.ErrorGladiatorMissing)
	}
	if oldID == newID {
		return col.outcome("UpgradeGladiator", api.ErrorSameIdentifier)
	}
	if col.byid.Has(Gladiator{ID: newID}) {
		return col.outcome("UpgradeGladiator", api.ErrorGladiatorExists)
	}
	col.unindex(g)
	g.ID = newID
	col.index(g)
	col.n_upgrades++
	return col.outcome("UpgradeGladiator", nil)
}

// GetTopGladiator return the identifier of the highest level
// gladiator owned by `trainerID`, or across the registry if
// `trainerID` is negative. Ties are broken by larger identifier.
func (col *Colosseum) GetTopGladiator(trainerID int) (int, error) {
	if trainerID == 0 {
		return 0, col.outcome("GetTopGladiator", api.ErrorInvalidInput)
	}
	col.n_queries++

	var id int
	var ok bool
	if trainerID > 0 {
		if !col.trainers.Has(trainerID) {
			return 0, col.outcome("GetTopGladiator", api.ErrorTrainerMissing)
		}
		id, ok = col.trainers.FindTrainer(trainerID).Top()
	} else {
		var g Gladiator
		g, ok = col.bylevel.Max()
		id = g.ID
	}
	if !ok {
		return 0, col.outcome("GetTopGladiator", api.ErrorEmptyIndex)
	}
	return id, col.outcome("GetTopGladiator", nil)
}

// GetAllGladiatorsByLevel return identifiers of gladiators owned by
// `trainerID`, or across the registry if `trainerID` is negative,
// in ascending order of {level, id}. Returned slice is owned by the
// caller, it is nil when there are no gladiators.
func (col *Colosseum) GetAllGladiatorsByLevel(trainerID int) ([]int, error) {
	if trainerID == 0 {
		return nil, col.outcome("GetAllGladiatorsByLevel", api.ErrorInvalidInput)
	}
	col.n_exports++

	var gs []Gladiator
	var err error
	if trainerID > 0 {
		if !col.trainers.Has(trainerID) {
			err = api.ErrorTrainerMissing
			return nil, col.outcome("GetAllGladiatorsByLevel", err)
		}
		gs, err = col.trainers.FindTrainer(trainerID).Gladiators()
	} else {
		gs, err = col.bylevel.Export()
	}
	if err != nil {
		return nil, col.outcome("GetAllGladiatorsByLevel", err)
	} else if len(gs) == 0 {
		return nil, col.outcome("GetAllGladiatorsByLevel", nil)
	}

	ids := make([]int, 0, len(gs))
	for _, g := range gs {
		ids = append(ids, g.ID)
	}
	return ids, col.outcome("GetAllGladiatorsByLevel", nil)
}

// UpdateLevels multiply the level of every gladiator whose identifier
// is divisible by `code` with `factor`. Either all qualifying
// gladiators are updated or, on error, none. Never fails for want of
// memory.
func (col *Colosseum) UpdateLevels(code, factor int) error {
	if code < 1 || factor < 1 {
		return col.outcome("UpdateLevels", api.ErrorInvalidInput)
	}

	col.n_updates++
	if factor == 1 {
		return col.outcome("UpdateLevels", nil)
	}

	// relevelling is budget neutral, qualifying gladiators are
	// collected without charging the arena.
	var overflow error
	qualified := []Gladiator{}
	col.byid.Range(nil, nil, "both", func(g Gladiator) bool {
		if g.ID%code != 0 {
			return true
		} else if g.Level > math.MaxInt/factor {
			fmsg := "gladiator %v level %v * %v overflows: %w"
			overflow = fmt.Errorf(fmsg, g.ID, g.Level, factor, api.ErrorInvalidInput)
			return false
		}
		qualified = append(qualified, g)
		return true
	})
	if overflow != nil {
		return col.outcome("UpdateLevels", overflow)
	}
	for _, g := range qualified {
		col.unindex(g)
		g.Level *= factor
		col.index(g)
		col.n_relevels++
	}
	debugf("%v UpdateLevels(%v, %v): %v gladiators\n", col.logprefix, code, factor, len(qualified))
	return col.outcome("UpdateLevels", nil)
}

// Dotdump the level index as graphviz dot script.
func (col *Colosseum) Dotdump(buffer io.Writer) {
	col.bylevel.Dotdump(buffer)
}

// Destroy all indexes and return their memory to the arena.
func (col *Colosseum) Destroy() {
	if col.dead {
		panic("Destroy(): already destroyed registry")
	}
	col.byid.Destroy()
	col.bylevel.Destroy()
	col.trainers.Destroy()
	if _, allocated, _ := col.arena.Info(); allocated != 0 {
		panic(fmt.Errorf("Destroy(): %v bytes leaked", allocated))
	}
	col.dead = true
	infof("%v destroyed\n", col.logprefix)
}

//---- local functions

// gladiatorsize return node sizes charged for indexing one gladiator.
func (col *Colosseum) gladiatorsize() []int64 {
	return []int64{
		col.byid.Nodesize(),
		col.bylevel.Nodesize(),
		col.trainers.GladiatorNodesize(),
	}
}

// index gladiator on all three indexes. Callers have verified that
// the gladiator is absent, its trainer exists and the arena can
// supply all nodes, hence any failure here is fatal.
func (col *Colosseum) index(g Gladiator) {
	if err := col.byid.Insert(g); err != nil {
		panic(fmt.Errorf("index(): %v on identifier index: %v", g, err))
	}
	if err := col.bylevel.Insert(g.levelkey()); err != nil {
		panic(fmt.Errorf("index(): %v on level index: %v", g, err))
	}
	err := col.trainers.AddGladiator(g.Trainer, g.ID, g.Level)
	if err != nil {
		panic(fmt.Errorf("index(): %v on trainer index: %v", g, err))
	}
}

// unindex gladiator, as read from the identifier index, from all
// three indexes.
func (col *Colosseum) unindex(g Gladiator) {
	if _, err := col.byid.Delete(g); err != nil {
		panic(fmt.Errorf("unindex(): %v on identifier index: %v", g, err))
	}
	if _, err := col.bylevel.Delete(g.levelkey()); err != nil {
		panic(fmt.Errorf("unindex(): %v on level index: %v", g, err))
	}
	err := col.trainers.RemoveGladiator(g.Trainer, g.ID, g.Level)
	if err != nil {
		panic(fmt.Errorf("unindex(): %v on trainer index: %v", g, err))
	}
}

// outcome account for the result of operation `op`, and validate all
// indexes after mutations if configured.
func (col *Colosseum) outcome(op string, err error) error {
	switch api.StatusOf(err) {
	case api.Success:
		col.n_success++
		if col.validate {
			col.Validate()
		}
	case api.InvalidInput:
		col.n_invalids++
		debugf("%v %v(): %v\n", col.logprefix, op, err)
	case api.AllocationError:
		col.n_ooms++
		_, allocated, available := col.arena.Info()
		fmsg := "%v %v(): %v, allocated %v available %v\n"
		a, v := humanize.Bytes(uint64(allocated)), humanize.Bytes(uint64(available))
		warnf(fmsg, col.logprefix, op, err, a, v)
	default:
		col.n_failures++
		debugf("%v %v(): %v\n", col.logprefix, op, err)
	}
	return err
}
