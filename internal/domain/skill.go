package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ecodeclub/ekit/set"
	"github.com/ecodeclub/ekit/slice"
)

type Skill struct {
	ID       int64  `json:"skillID"`
	Name     string `json:"skillName"`
	Category string `json:"category"`
}

// SkillRef is a skill id accepted either bare (5, "5") or as an object
// carrying the id ({"SkillID": 5}).
type SkillRef int64

func (r *SkillRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	switch data[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for _, k := range []string{"SkillID", "skillID", "skillId", "id"} {
			if raw, ok := obj[k]; ok {
				return r.UnmarshalJSON(raw)
			}
		}
		*r = 0
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			*r = 0
			return nil
		}
		*r = SkillRef(id)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*r = SkillRef(int64(n))
		return nil
	}
}

// SkillIDs returns the positive, de-duplicated ids in input order.
func SkillIDs(refs []SkillRef) []int64 {
	seen := set.NewMapSet[int64](len(refs))
	return slice.FilterMap(refs, func(_ int, r SkillRef) (int64, bool) {
		id := int64(r)
		if id <= 0 || seen.Exist(id) {
			return 0, false
		}
		seen.Add(id)
		return id, true
	})
}

type SkillCount struct {
	SkillID   int64  `json:"skillID"`
	SkillName string `json:"skillName"`
	Count     int64  `json:"count"`
}

type SkillRepository interface {
	// List returns the catalog ordered by category, name.
	List(ctx context.Context) ([]Skill, error)
}

// SkillCache stores the catalog. A miss is (nil, false, nil).
type SkillCache interface {
	Get(ctx context.Context) ([]Skill, bool, error)
	Set(ctx context.Context, skills []Skill) error
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]Skill, error)
}
