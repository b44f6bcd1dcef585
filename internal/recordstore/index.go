package recordstore

// ownerIndex maps an owner to the sequences of its memories in insertion order.
type ownerIndex struct {
	sequences map[string][]int64
	owners    int
}

func newOwnerIndex() *ownerIndex {
	return &ownerIndex{sequences: make(map[string][]int64)}
}

func (i *ownerIndex) append(owner string, sequence int64) {
	prev := i.sequences[owner]
	if len(prev) == 0 {
		i.owners++
	}
	i.sequences[owner] = append(prev, sequence)
}

func (i *ownerIndex) lookup(owner string) []int64 {
	return i.sequences[owner]
}

func (i *ownerIndex) count(owner string) int {
	return len(i.sequences[owner])
}
