package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// ActionUnion is a set of action types accepted by a sandbox kind.
type ActionUnion int

const (
	// ActionUnionAll accepts every registered action type.
	ActionUnionAll ActionUnion = iota
	// ActionUnionComputerUse accepts the common and computer (mouse and keyboard) actions.
	ActionUnionComputerUse
	// ActionUnionMobileUse accepts the mobile, common, touch, Android, OS and keyboard type/hotkey actions.
	ActionUnionMobileUse
)

func (u ActionUnion) String() string {
	switch u {
	case ActionUnionComputerUse:
		return "computer use"
	case ActionUnionMobileUse:
		return "mobile use"
	default:
		return ""
	}
}

func (u ActionUnion) contains(typ string, family ActionFamily) bool {
	switch u {
	case ActionUnionComputerUse:
		return family == ActionFamilyCommon || family == ActionFamilyComputer
	case ActionUnionMobileUse:
		switch family {
		case ActionFamilyMobile, ActionFamilyCommon, ActionFamilyTouch, ActionFamilyAndroid, ActionFamilyOS:
			return true
		}
		return typ == ActionTypeKeyboardType || typ == ActionTypeKeyboardHotkey
	default:
		return true
	}
}

// ActionInfo describes a registered action type.
type ActionInfo struct {
	Type           string
	Family         ActionFamily
	Policy         FieldPolicy
	RequiredFields []string
	OptionalFields []string
}

type actionField struct {
	name     string
	index    []int
	required bool
	length   bool
}

type actionDef struct {
	family ActionFamily
	policy FieldPolicy
	new    func() Action
	fields []actionField
}

var actionRegistry = newActionRegistry([]actionDef{
	// Common.
	{family: ActionFamilyCommon, policy: FieldPolicyIgnore, new: func() Action { return &ScreenshotAction{} }},
	{family: ActionFamilyCommon, policy: FieldPolicyIgnore, new: func() Action { return &WaitAction{} }},
	{family: ActionFamilyCommon, policy: FieldPolicyRetain, new: func() Action { return &FinishedAction{} }},
	{family: ActionFamilyCommon, policy: FieldPolicyRetain, new: func() Action { return &FailedAction{} }},
	{family: ActionFamilyCommon, policy: FieldPolicyIgnore, new: func() Action { return &UserTakeoverAction{} }},

	// Computer.
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseClickAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseDoubleClickAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseTripleClickAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseMoveAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseScrollAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &MouseDragAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyRetain, new: func() Action { return &KeyboardTypeAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &KeyboardHotkeyAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &KeyDownAction{} }},
	{family: ActionFamilyComputer, policy: FieldPolicyStrict, new: func() Action { return &KeyUpAction{} }},

	// Mobile.
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileTapAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileDoubleTapAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileSwipeAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileTypeAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileHotkeyAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileHomeAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileBackAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileScreenshotAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileWaitAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileFinishedAction{} }},
	{family: ActionFamilyMobile, policy: FieldPolicyIgnore, new: func() Action { return &MobileFailedAction{} }},

	// Touch.
	{family: ActionFamilyTouch, policy: FieldPolicyIgnore, new: func() Action { return &TouchTapAction{} }},
	{family: ActionFamilyTouch, policy: FieldPolicyIgnore, new: func() Action { return &TouchDragAction{} }},
	{family: ActionFamilyTouch, policy: FieldPolicyIgnore, new: func() Action { return &TouchSwipeAction{} }},
	{family: ActionFamilyTouch, policy: FieldPolicyIgnore, new: func() Action { return &TouchLongPressAction{} }},

	// Android.
	{family: ActionFamilyAndroid, policy: FieldPolicyIgnore, new: func() Action { return &AndroidBackAction{} }},
	{family: ActionFamilyAndroid, policy: FieldPolicyIgnore, new: func() Action { return &AndroidHomeAction{} }},

	// OS.
	{family: ActionFamilyOS, policy: FieldPolicyIgnore, new: func() Action { return &OSStartAppAction{} }},
	{family: ActionFamilyOS, policy: FieldPolicyIgnore, new: func() Action { return &OSStartAppByNameAction{} }},
	{family: ActionFamilyOS, policy: FieldPolicyIgnore, new: func() Action { return &OSCloseAppAction{} }},
	{family: ActionFamilyOS, policy: FieldPolicyIgnore, new: func() Action { return &OSListAppsAction{} }},
})

func newActionRegistry(defs []actionDef) map[string]actionDef {
	reg := make(map[string]actionDef, len(defs))
	for _, s := range defs {
		a := s.new()
		s.fields = actionFields(reflect.TypeOf(a).Elem())
		reg[a.Type()] = s
	}
	return reg
}

var lengthType = reflect.TypeOf(Length{})

// actionFields returns the payload fields of a variant struct, fields
// without omitempty are required.
func actionFields(t reflect.Type) []actionField {
	var fields []actionField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fields = append(fields, actionField{
			name:     name,
			index:    f.Index,
			required: !strings.Contains(opts, "omitempty"),
			length:   f.Type == lengthType,
		})
	}
	return fields
}

// ActionTypes returns the information of all the registered action types sorted by type.
func ActionTypes() []ActionInfo {
	infos := make([]ActionInfo, 0, len(actionRegistry))
	for typ, def := range actionRegistry {
		info := ActionInfo{Type: typ, Family: def.family, Policy: def.policy}
		for _, f := range def.fields {
			if f.required {
				info.RequiredFields = append(info.RequiredFields, f.name)
			} else {
				info.OptionalFields = append(info.OptionalFields, f.name)
			}
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })

	return infos
}

// DecodeAction decodes and validates a JSON action payload of any registered type.
func DecodeAction(data []byte) (Action, error) {
	return decodeAction(ActionUnionAll, data)
}

// DecodeComputerUseAction decodes and validates a JSON action payload that must be a computer use action.
func DecodeComputerUseAction(data []byte) (Action, error) {
	return decodeAction(ActionUnionComputerUse, data)
}

// DecodeMobileUseAction decodes and validates a JSON action payload that must be a mobile use action.
func DecodeMobileUseAction(data []byte) (Action, error) {
	return decodeAction(ActionUnionMobileUse, data)
}

// DecodeUnionAction decodes and validates a JSON action payload that must be part of union.
func DecodeUnionAction(union ActionUnion, data []byte) (Action, error) {
	return decodeAction(union, data)
}

// DecodeActionMap is like DecodeAction but for already decoded generic payloads.
func DecodeActionMap(payload map[string]any) (Action, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &InvalidActionPayloadError{Reason: err.Error()}
	}
	return decodeAction(ActionUnionAll, data)
}

// IsComputerUseAction returns true if the action can be executed on a computer use sandbox.
func IsComputerUseAction(a Action) bool {
	return inUnion(ActionUnionComputerUse, a)
}

// IsMobileUseAction returns true if the action can be executed on a mobile use sandbox.
func IsMobileUseAction(a Action) bool {
	return inUnion(ActionUnionMobileUse, a)
}

func inUnion(u ActionUnion, a Action) bool {
	def, ok := actionRegistry[a.Type()]
	return ok && u.contains(a.Type(), def.family)
}

// ValidateAction checks that a caller built action satisfies its variant schema.
func ValidateAction(a Action) error {
	if a == nil || reflect.ValueOf(a).IsNil() {
		return &InvalidActionPayloadError{Reason: "action is missing"}
	}
	def, ok := actionRegistry[a.Type()]
	if !ok {
		return &UnknownActionTypeError{Type: a.Type()}
	}

	v := reflect.ValueOf(a).Elem()
	var missing []string
	for _, f := range def.fields {
		if f.required && f.length && v.FieldByIndex(f.index).Interface().(Length).IsZero() {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &InvalidActionPayloadError{ActionType: a.Type(), Fields: missing, Reason: "required fields are missing"}
	}

	data, err := json.Marshal(a)
	if err != nil {
		return &InvalidActionPayloadError{ActionType: a.Type(), Reason: err.Error()}
	}
	_, err = decodeAction(ActionUnionAll, data)
	return err
}

func decodeAction(union ActionUnion, data []byte) (Action, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return nil, &InvalidActionPayloadError{Reason: "payload must be a JSON object"}
	}

	var typ string
	if raw, ok := payload["type"]; ok {
		if err := json.Unmarshal(raw, &typ); err != nil {
			return nil, &UnknownActionTypeError{Type: string(raw), Union: union.String()}
		}
	}
	def, ok := actionRegistry[typ]
	if !ok || !union.contains(typ, def.family) {
		return nil, &UnknownActionTypeError{Type: typ, Union: union.String()}
	}

	known := map[string]bool{"type": true, "callId": true}
	for _, f := range def.fields {
		known[f.name] = true
	}
	extra := map[string]json.RawMessage{}
	for k, raw := range payload {
		if !known[k] {
			extra[k] = raw
		}
	}
	if def.policy == FieldPolicyStrict && len(extra) > 0 {
		return nil, &InvalidActionPayloadError{ActionType: typ, Fields: sortedKeys(extra), Reason: "unknown fields are not allowed"}
	}

	var missing []string
	for _, f := range def.fields {
		raw, ok := payload[f.name]
		if f.required && (!ok || isJSONNull(raw)) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &InvalidActionPayloadError{ActionType: typ, Fields: missing, Reason: "required fields are missing"}
	}

	action := def.new()
	v := reflect.ValueOf(action).Elem()
	for _, f := range def.fields {
		raw, ok := payload[f.name]
		if !ok || isJSONNull(raw) {
			continue
		}
		if err := json.Unmarshal(raw, v.FieldByIndex(f.index).Addr().Interface()); err != nil {
			return nil, &InvalidActionPayloadError{ActionType: typ, Fields: []string{f.name}, Reason: err.Error()}
		}
	}

	base := action.actionBase()
	if raw, ok := payload["callId"]; ok && !isJSONNull(raw) {
		if err := json.Unmarshal(raw, &base.CallID); err != nil {
			return nil, &InvalidActionPayloadError{ActionType: typ, Fields: []string{"callId"}, Reason: err.Error()}
		}
	}
	if base.CallID == "" {
		base.CallID = NewCallID()
	}

	if def.policy == FieldPolicyRetain && len(extra) > 0 {
		base.Extra = extra
	}

	if vd, ok := action.(interface{ validate() error }); ok {
		if err := vd.validate(); err != nil {
			return nil, err
		}
	}

	return action, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
