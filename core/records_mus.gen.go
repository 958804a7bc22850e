// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapuKuaJiyFanxSZMYBUy5FIAΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	sliceJyssYeTnDSfiYflcKvZVNwΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceQwPYxNk4edRfeQrv6UUgcwΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var VectorMUS = vectorMUS{}

type vectorMUS struct{}

func (s vectorMUS) Marshal(v Vector, bs []byte) (n int) {
	return sliceJyssYeTnDSfiYflcKvZVNwΞΞ.Marshal([]float32(v), bs)
}

func (s vectorMUS) Unmarshal(bs []byte) (v Vector, n int, err error) {
	tmp, n, err := sliceJyssYeTnDSfiYflcKvZVNwΞΞ.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Vector(tmp)
	return
}

func (s vectorMUS) Size(v Vector) (size int) {
	return sliceJyssYeTnDSfiYflcKvZVNwΞΞ.Size([]float32(v))
}

func (s vectorMUS) Skip(bs []byte) (n int, err error) {
	return sliceJyssYeTnDSfiYflcKvZVNwΞΞ.Skip(bs)
}

var ConceptMUS = conceptMUS{}

type conceptMUS struct{}

func (s conceptMUS) Marshal(v Concept, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	return n + sliceQwPYxNk4edRfeQrv6UUgcwΞΞ.Marshal(v.SemanticTypes, bs[n:])
}

func (s conceptMUS) Unmarshal(bs []byte) (v Concept, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SemanticTypes, n1, err = sliceQwPYxNk4edRfeQrv6UUgcwΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s conceptMUS) Size(v Concept) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	return size + sliceQwPYxNk4edRfeQrv6UUgcwΞΞ.Size(v.SemanticTypes)
}

func (s conceptMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceQwPYxNk4edRfeQrv6UUgcwΞΞ.Skip(bs[n:])
	n += n1
	return
}

var RelationshipMUS = relationshipMUS{}

type relationshipMUS struct{}

func (s relationshipMUS) Marshal(v Relationship, bs []byte) (n int) {
	n = IDMUS.Marshal(v.From, bs)
	n += IDMUS.Marshal(v.To, bs[n:])
	n += IDMUS.Marshal(v.Type, bs[n:])
	n += varint.Int32.Marshal(v.Group, bs[n:])
	return n + mapuKuaJiyFanxSZMYBUy5FIAΞΞ.Marshal(v.Provenance, bs[n:])
}

func (s relationshipMUS) Unmarshal(bs []byte) (v Relationship, n int, err error) {
	v.From, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.To, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Type, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Group, n1, err = varint.Int32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Provenance, n1, err = mapuKuaJiyFanxSZMYBUy5FIAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s relationshipMUS) Size(v Relationship) (size int) {
	size = IDMUS.Size(v.From)
	size += IDMUS.Size(v.To)
	size += IDMUS.Size(v.Type)
	size += varint.Int32.Size(v.Group)
	return size + mapuKuaJiyFanxSZMYBUy5FIAΞΞ.Size(v.Provenance)
}

func (s relationshipMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapuKuaJiyFanxSZMYBUy5FIAΞΞ.Skip(bs[n:])
	n += n1
	return
}
