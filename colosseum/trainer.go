package colosseum

import "fmt"

import "github.com/bnclabs/colosseum/api"
import "github.com/bnclabs/colosseum/llrb"

// Trainer owns an index of its gladiators ordered by {level, id}.
type Trainer struct {
	ID         int
	gladiators *llrb.LLRB[Gladiator]
}

// Count return the number of gladiators owned by this trainer.
func (tr *Trainer) Count() int64 {
	return tr.gladiators.Count()
}

// Top return the identifier of the highest level gladiator, ties
// broken by larger identifier.
func (tr *Trainer) Top() (int, bool) {
	g, ok := tr.gladiators.Max()
	return g.ID, ok
}

// Gladiators return this trainer's gladiators in ascending order of
// {level, id}.
func (tr *Trainer) Gladiators() ([]Gladiator, error) {
	return tr.gladiators.Export()
}

func bytrainer(a, b *Trainer) int {
	return cmpint(a.ID, b.ID)
}

// TrainerDirectory maps trainer identifier to its Trainer record.
// Trainers are only ever added, never removed.
type TrainerDirectory struct {
	name     string
	arena    api.Mallocer
	trainers *llrb.LLRB[*Trainer]
	// node size of every trainer's gladiator index.
	nodesize int64
}

// NewTrainerDirectory create an empty directory whose records and
// their indexes draw from `arena`.
func NewTrainerDirectory(name string, arena api.Mallocer) *TrainerDirectory {
	dir := &TrainerDirectory{name: name, arena: arena}
	dir.trainers = llrb.NewLLRB[*Trainer](name+"-trainers", bytrainer, arena)
	dir.nodesize = llrb.Nodesize[Gladiator]()
	return dir
}

// Count return number of trainers.
func (dir *TrainerDirectory) Count() int64 {
	return dir.trainers.Count()
}

// Nodesize return the bytes charged for adding a trainer.
func (dir *TrainerDirectory) Nodesize() int64 {
	return dir.trainers.Nodesize()
}

// GladiatorNodesize return the bytes charged for adding a gladiator
// to a trainer's index.
func (dir *TrainerDirectory) GladiatorNodesize() int64 {
	return dir.nodesize
}

// Has return whether trainer `id` is registered.
func (dir *TrainerDirectory) Has(id int) bool {
	return dir.trainers.Has(&Trainer{ID: id})
}

// AddTrainer register a new trainer with an empty gladiator index.
func (dir *TrainerDirectory) AddTrainer(id int) error {
	if dir.Has(id) {
		return api.ErrorTrainerExists
	}
	name := fmt.Sprintf("%v-trainer-%v", dir.name, id)
	tr := &Trainer{ID: id}
	tr.gladiators = llrb.NewLLRB[Gladiator](name, bylevel, dir.arena)
	return dir.trainers.Insert(tr)
}

// FindTrainer return the record for trainer `id`. Callers shall check
// for its existence, a missing trainer is a programming error.
func (dir *TrainerDirectory) FindTrainer(id int) *Trainer {
	tr, ok := dir.trainers.Get(&Trainer{ID: id})
	if !ok {
		panic(fmt.Errorf("FindTrainer(): missing trainer %v", id))
	}
	return tr
}

// AddGladiator to trainer's index.
func (dir *TrainerDirectory) AddGladiator(trainerID, gladiatorID, level int) error {
	tr := dir.FindTrainer(trainerID)
	return tr.gladiators.Insert(Gladiator{ID: gladiatorID, Level: level})
}

// RemoveGladiator from trainer's index.
func (dir *TrainerDirectory) RemoveGladiator(trainerID, gladiatorID, level int) error {
	tr := dir.FindTrainer(trainerID)
	_, err := tr.gladiators.Delete(Gladiator{ID: gladiatorID, Level: level})
	return err
}

// HasGladiator return whether trainer's index holds {level, id}.
func (dir *TrainerDirectory) HasGladiator(trainerID, gladiatorID, level int) bool {
	tr := dir.FindTrainer(trainerID)
	return tr.gladiators.Has(Gladiator{ID: gladiatorID, Level: level})
}

// Trainers return all trainer identifiers in ascending order.
func (dir *TrainerDirectory) Trainers() []int {
	ids := make([]int, 0, dir.trainers.Count())
	dir.trainers.Range(nil, nil, "both", func(tr *Trainer) bool {
		ids = append(ids, tr.ID)
		return true
	})
	return ids
}

// Memory return bytes charged to arena by the directory and all
// trainer indexes.
func (dir *TrainerDirectory) Memory() int64 {
	memory := dir.trainers.Count() * dir.trainers.Nodesize()
	dir.trainers.Range(nil, nil, "both", func(tr *Trainer) bool {
		memory += tr.gladiators.Count() * tr.gladiators.Nodesize()
		return true
	})
	return memory
}

// Destroy every trainer index and the directory.
func (dir *TrainerDirectory) Destroy() {
	dir.trainers.Range(nil, nil, "both", func(tr *Trainer) bool {
		tr.gladiators.Destroy()
		return true
	})
	dir.trainers.Destroy()
}

// validate the directory and every trainer index, return the total
// number of gladiators across trainers.
func (dir *TrainerDirectory) validate() (count int64) {
	dir.trainers.Validate()
	dir.trainers.Range(nil, nil, "both", func(tr *Trainer) bool {
		tr.gladiators.Validate()
		count += tr.gladiators.Count()
		return true
	})
	return count
}
