package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/corridor/ecs/component"
	"github.com/milk9111/corridor/prefabs"
)

// behaviorRuntime holds one enemy's compiled tengo behavior. The script
// defines update(engine, state, current) and requests transitions through
// the engine; state is a script-owned map that persists across ticks.
type behaviorRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	pending    string
}

const behaviorDispatchScript = `
if __phase == "update" {
	update(__engine, __state, __current_state)
}
`

// scriptedNext runs the enemy's behavior script and returns the state it
// asked for, or the current state when the script fails or stays put.
func (s *AISystem) scriptedNext(ctx *aiContext) component.StateKind {
	rt, err := s.getBehaviorRuntime(ctx)
	if err != nil {
		fmt.Printf("ai: entity=%s load behavior error: %v\n", ctx.entity, err)
		return ctx.state.Current
	}

	engine := buildBehaviorEngine(ctx, rt)
	if err := rt.runPhase("update", ctx.state.Current, engine); err != nil {
		fmt.Printf("ai: entity=%s behavior update error: %v\n", ctx.entity, err)
		return ctx.state.Current
	}

	pending := strings.TrimSpace(rt.pending)
	rt.pending = ""
	if pending == "" {
		return ctx.state.Current
	}
	next, ok := component.StateKindFromString(pending)
	if !ok {
		fmt.Printf("ai: entity=%s behavior requested unknown state %q\n", ctx.entity, pending)
		return ctx.state.Current
	}
	return next
}

func (s *AISystem) getBehaviorRuntime(ctx *aiContext) (*behaviorRuntime, error) {
	path := strings.TrimSpace(ctx.ai.Script)
	if path == "" {
		return nil, fmt.Errorf("no behavior script")
	}

	if rt, ok := s.scripts[ctx.entity]; ok && rt != nil && rt.scriptPath == path {
		return rt, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte("\n"+behaviorDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &behaviorRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.scripts[ctx.entity] = rt
	return rt, nil
}

func (rt *behaviorRuntime) runPhase(phase string, current component.StateKind, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil behavior runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", current.String()); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildBehaviorEngine(ctx *aiContext, rt *behaviorRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		rt.pending = name
		return tengo.TrueValue, nil
	}}

	values["distance_to_player"] = &tengo.UserFunction{Name: "distance_to_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.dist}, nil
	}}

	values["sees_player"] = &tengo.UserFunction{Name: "sees_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolValue(ctx.seen), nil
	}}

	values["has_target"] = &tengo.UserFunction{Name: "has_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolValue(ctx.state.HasTarget), nil
	}}

	values["in_attack_radius"] = &tengo.UserFunction{Name: "in_attack_radius", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolValue(ctx.dist <= ctx.ai.AttackRadius), nil
	}}

	values["in_detect_radius"] = &tengo.UserFunction{Name: "in_detect_radius", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolValue(ctx.dist <= ctx.ai.DetectRadius), nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: ctx.playerPos.X},
			&tengo.Float{Value: ctx.playerPos.Y},
		}}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: ctx.pose.Pos.X},
			&tengo.Float{Value: ctx.pose.Pos.Y},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolValue(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
