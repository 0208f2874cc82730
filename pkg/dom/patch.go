package dom

import (
	"encoding/json"
	"fmt"
)

// PatchOp is the type of a recorded mutation.
type PatchOp uint8

const (
	PatchSetText    PatchOp = 0x01 // Replace text content
	PatchSetAttr    PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchInsertNode PatchOp = 0x04 // Append a child
	PatchRemoveNode PatchOp = 0x05 // Detach a node
	PatchSetValue   PatchOp = 0x08 // Set input value
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchSetValue:
		return "SetValue"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the op by name so patch logs stay readable.
func (op PatchOp) MarshalText() ([]byte, error) {
	s := op.String()
	if s == "Unknown" {
		return nil, fmt.Errorf("dom: unknown patch op 0x%02x", uint8(op))
	}
	return []byte(s), nil
}

// UnmarshalText decodes an op name written by MarshalText.
func (op *PatchOp) UnmarshalText(b []byte) error {
	for _, candidate := range []PatchOp{PatchSetText, PatchSetAttr, PatchRemoveAttr, PatchInsertNode, PatchRemoveNode, PatchSetValue} {
		if candidate.String() == string(b) {
			*op = candidate
			return nil
		}
	}
	return fmt.Errorf("dom: unknown patch op %q", b)
}

// Patch is a single mutation applied to an element connected to the document.
type Patch struct {
	Op     PatchOp `json:"op"`
	Target string  `json:"target"`          // id, or "<tag>" for elements without one
	Key    string  `json:"key,omitempty"`   // attribute name for SetAttr/RemoveAttr
	Value  string  `json:"value,omitempty"` // new value; outer HTML for InsertNode
}

// String formats the patch as a single log line.
func (p Patch) String() string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%s %s", p.Op, p.Target)
	}
	return string(b)
}

// PatchFunc receives mutations in the order they are applied.
type PatchFunc func(Patch)

// Recorder collects patches. Its Record method is a PatchFunc.
type Recorder struct {
	patches []Patch
}

// Record appends p.
func (r *Recorder) Record(p Patch) {
	r.patches = append(r.patches, p)
}

// Patches returns the recorded patches.
func (r *Recorder) Patches() []Patch {
	return r.patches
}

// Drain returns the recorded patches and resets the recorder.
func (r *Recorder) Drain() []Patch {
	out := r.patches
	r.patches = nil
	return out
}

// Target returns the patch target name for an element.
func Target(el Element) string {
	if el == nil {
		return ""
	}
	if id := el.ID(); id != "" {
		return id
	}
	return "<" + el.TagName() + ">"
}
