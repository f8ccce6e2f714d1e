package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/yakari/internal/argument"
	"github.com/cristianoliveira/yakari/internal/source"
)

// Options tune how a definition is turned into a Menu.
type Options struct {
	// Name is used when the definition has no name.
	Name string
	// Defaults is the configuration the root menu inherits from.
	Defaults Configuration
	// SuggestionsTimeout bounds command-backed suggestions. Zero means none.
	SuggestionsTimeout time.Duration
}

// Load resolves name through loader and builds the menu.
func Load(ctx context.Context, loader *source.Loader, name string, opts Options) (*Menu, error) {
	def, err := loader.Load(ctx, name)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, &ConfigError{Reason: fmt.Sprintf("no definition found for %q", name), Err: err}
		}
		return nil, &ConfigError{Path: name, Err: err}
	}
	if opts.Name == "" {
		opts.Name = def.Name
	}
	return FromSource(def.Data, opts)
}

// FromSource builds and validates a menu tree from a decoded definition,
// then propagates configuration from the root to every argument.
func FromSource(def *source.Map, opts Options) (*Menu, error) {
	b := builder{opts: opts}
	root, err := b.menu(def, "", opts.Name, nil)
	if err != nil {
		return nil, err
	}
	propagate(root, opts.Defaults)
	if err := validateTree(root); err != nil {
		return nil, err
	}
	return root, nil
}

type builder struct {
	opts Options
}

var (
	menuKeys    = keySet("name", "description", "configuration", "arguments", "menus", "commands")
	configKeys  = keySet("sort_arguments", "sort_menus", "sort_commands", "separator", "multi_style")
	commandKeys = keySet("name", "description", "template", "inplace")
	commonKeys  = []string{"kind", "template", "description", "group"}
	namedKeys   = []string{"name", "separator", "multi", "multi_style"}
	flagKeys    = keySet(append([]string{"flag", "on"}, commonKeys...)...)
	choiceKeys  = keySet(append(append([]string{"choices", "selected"}, commonKeys...), namedKeys...)...)
	valueKeys   = keySet(append(append([]string{"value", "password", "suggestions"}, commonKeys...), namedKeys...)...)
	selectKeys  = keySet("include", "exclude", "scope")
	suggestKeys = keySet("command", "cache")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func checkKeys(m *source.Map, allowed map[string]bool, path string) error {
	for _, k := range m.Keys() {
		if !allowed[k] {
			return configErr(path, "unknown field %q", k)
		}
	}
	return nil
}

func (b *builder) menu(def *source.Map, path, defaultName string, ancestors map[string]bool) (*Menu, error) {
	if err := checkKeys(def, menuKeys, path); err != nil {
		return nil, err
	}
	m := &Menu{}
	var err error
	if m.Name, err = def.String("name", defaultName); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if m.Description, err = def.String("description", ""); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if m.Configuration, err = configuration(def, path); err != nil {
		return nil, err
	}

	args, err := def.Map("arguments")
	if err != nil {
		return nil, wrapConfigErr(path, err)
	}
	for _, shortcut := range args.Keys() {
		p := source.JoinPath(path, "arguments", shortcut)
		if shortcut == "" {
			return nil, configErr(p, "empty shortcut")
		}
		raw, _ := args.Get(shortcut)
		arg, err := b.argument(raw, p)
		if err != nil {
			return nil, err
		}
		m.Arguments = append(m.Arguments, Entry[argument.Argument]{Shortcut: shortcut, Value: arg})
	}

	visible := make(map[string]bool, len(ancestors)+len(m.Arguments))
	for k := range ancestors {
		visible[k] = true
	}
	for _, e := range m.Arguments {
		visible[e.Shortcut] = true
	}

	menus, err := def.Map("menus")
	if err != nil {
		return nil, wrapConfigErr(path, err)
	}
	for _, shortcut := range menus.Keys() {
		p := source.JoinPath(path, "menus", shortcut)
		if err := b.checkShortcut(m, shortcut, p); err != nil {
			return nil, err
		}
		sub, err := menus.Map(shortcut)
		if err != nil {
			return nil, wrapConfigErr(p, err)
		}
		child, err := b.menu(sub, p, shortcut, visible)
		if err != nil {
			return nil, err
		}
		m.Menus = append(m.Menus, Entry[*Menu]{Shortcut: shortcut, Value: child})
	}

	cmds, err := def.Map("commands")
	if err != nil {
		return nil, wrapConfigErr(path, err)
	}
	for _, shortcut := range cmds.Keys() {
		p := source.JoinPath(path, "commands", shortcut)
		if err := b.checkShortcut(m, shortcut, p); err != nil {
			return nil, err
		}
		sub, err := cmds.Map(shortcut)
		if err != nil {
			return nil, wrapConfigErr(p, err)
		}
		cmd, err := b.command(sub, p, shortcut, m, ancestors)
		if err != nil {
			return nil, err
		}
		m.Commands = append(m.Commands, Entry[*Command]{Shortcut: shortcut, Value: cmd})
	}
	return m, nil
}

// checkShortcut rejects a shortcut already bound in m.
func (b *builder) checkShortcut(m *Menu, shortcut, path string) error {
	if shortcut == "" {
		return configErr(path, "empty shortcut")
	}
	if _, ok := m.Candidate(shortcut); ok {
		return configErr(path, "duplicate shortcut %q", shortcut)
	}
	return nil
}

func configuration(def *source.Map, path string) (Configuration, error) {
	var c Configuration
	raw, err := def.Map("configuration")
	if err != nil || raw == nil {
		return c, wrapNil(path, err)
	}
	p := source.JoinPath(path, "configuration")
	if err := checkKeys(raw, configKeys, p); err != nil {
		return c, err
	}
	if c.SortArguments, err = raw.OptionalBool("sort_arguments"); err != nil {
		return c, wrapConfigErr(p, err)
	}
	if c.SortMenus, err = raw.OptionalBool("sort_menus"); err != nil {
		return c, wrapConfigErr(p, err)
	}
	if c.SortCommands, err = raw.OptionalBool("sort_commands"); err != nil {
		return c, wrapConfigErr(p, err)
	}
	sep, err := raw.String("separator", "")
	if err != nil {
		return c, wrapConfigErr(p, err)
	}
	if sep != "" && !argument.ValidSeparator(argument.Separator(sep)) {
		return c, configErr(p, "invalid separator %q, expected %q or %q", sep, argument.SeparatorSpace, argument.SeparatorEqual)
	}
	c.Separator = argument.Separator(sep)
	if c.MultiStyle, err = raw.String("multi_style", ""); err != nil {
		return c, wrapConfigErr(p, err)
	}
	return c, nil
}

func wrapNil(path string, err error) error {
	if err == nil {
		return nil
	}
	return wrapConfigErr(path, err)
}

func (b *builder) command(def *source.Map, path, shortcut string, m *Menu, ancestors map[string]bool) (*Command, error) {
	if err := checkKeys(def, commandKeys, path); err != nil {
		return nil, err
	}
	c := &Command{}
	var err error
	if c.Name, err = def.String("name", shortcut); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if c.Description, err = def.String("description", ""); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if c.Inplace, err = def.OptionalBool("inplace"); err != nil {
		return nil, wrapConfigErr(path, err)
	}

	raw, ok := def.Get("template")
	if !ok {
		return nil, configErr(path, "command requires a template")
	}
	var parts []any
	switch typed := raw.(type) {
	case string:
		parts = []any{typed}
	case []any:
		parts = typed
	default:
		return nil, configErr(path, "template: expected array, got %s", source.TypeName(raw))
	}

	for i, part := range parts {
		p := fmt.Sprintf("%s.template[%d]", path, i)
		el, err := b.element(part, p, m, ancestors)
		if err != nil {
			return nil, err
		}
		c.Template = append(c.Template, el)
	}
	return c, nil
}

func (b *builder) element(raw any, path string, m *Menu, ancestors map[string]bool) (Element, error) {
	switch typed := raw.(type) {
	case string:
		return Literal(typed), nil
	case int64, float64, bool:
		return Literal(scalarString(typed)), nil
	case *source.Map:
		if isSelector(typed) {
			sel, err := selector(typed, path, m, ancestors)
			if err != nil {
				return Element{}, err
			}
			return Select(sel), nil
		}
		arg, err := b.argument(typed, path)
		if err != nil {
			return Element{}, err
		}
		return Dynamic(arg), nil
	default:
		return Element{}, configErr(path, "unsupported template element %s", source.TypeName(raw))
	}
}

func isSelector(m *source.Map) bool {
	for _, k := range m.Keys() {
		if selectKeys[k] {
			return true
		}
	}
	return false
}

func selector(def *source.Map, path string, m *Menu, ancestors map[string]bool) (*MenuArguments, error) {
	if err := checkKeys(def, selectKeys, path); err != nil {
		return nil, err
	}
	s := &MenuArguments{Scope: ScopeThis}

	scope, err := def.String("scope", string(ScopeThis))
	if err != nil {
		return nil, wrapConfigErr(path, err)
	}
	switch Scope(scope) {
	case ScopeThis, ScopeAll:
		s.Scope = Scope(scope)
	default:
		return nil, configErr(path, "invalid scope %q, expected %q or %q", scope, ScopeThis, ScopeAll)
	}

	if s.Include, err = stringList(def, "include", path); err != nil {
		return nil, err
	}
	if s.Exclude, err = stringList(def, "exclude", path); err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, e := range m.Arguments {
		known[e.Shortcut] = true
	}
	if s.Scope == ScopeAll {
		for k := range ancestors {
			known[k] = true
		}
	}
	check := func(field string, keys []string) error {
		for _, k := range keys {
			if k == IncludeAll && field == "include" && len(keys) == 1 {
				continue
			}
			if !known[k] {
				return configErr(path, "%s references unknown argument %q", field, k)
			}
		}
		return nil
	}
	if err := check("include", s.Include); err != nil {
		return nil, err
	}
	if err := check("exclude", s.Exclude); err != nil {
		return nil, err
	}
	return s, nil
}

// stringList reads a string or list of strings.
func stringList(def *source.Map, key, path string) ([]string, error) {
	raw, ok := def.Get(key)
	if !ok {
		return nil, nil
	}
	out, err := argument.NormalizeSelection(raw)
	if err != nil {
		return nil, configErr(source.JoinPath(path, key), "%v", err)
	}
	return out, nil
}

func scalarString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(v)
	}
}

// scalarList reads a scalar or a list of scalars as strings.
func scalarList(raw any, path string) ([]string, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case string, int64, float64, bool:
		return []string{scalarString(typed)}, nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			switch item.(type) {
			case string, int64, float64, bool:
				out = append(out, scalarString(item))
			default:
				return nil, configErr(path, "expected scalar values, got %s", source.TypeName(item))
			}
		}
		return out, nil
	default:
		return nil, configErr(path, "expected scalar or array, got %s", source.TypeName(raw))
	}
}

func argumentKind(def *source.Map, path string) (argument.Kind, error) {
	if kind, err := def.String("kind", ""); err != nil {
		return 0, wrapConfigErr(path, err)
	} else if kind != "" {
		switch kind {
		case "flag":
			return argument.KindFlag, nil
		case "choice":
			return argument.KindChoice, nil
		case "value":
			return argument.KindValue, nil
		default:
			return 0, configErr(path, "unknown argument kind %q", kind)
		}
	}
	switch {
	case def.Has("flag"):
		return argument.KindFlag, nil
	case def.Has("choices"):
		return argument.KindChoice, nil
	case def.Has("name"):
		return argument.KindValue, nil
	default:
		return 0, configErr(path, "cannot tell argument kind: expected flag, choices or name")
	}
}

func (b *builder) argument(raw any, path string) (argument.Argument, error) {
	def, ok := raw.(*source.Map)
	if !ok {
		return nil, configErr(path, "expected table, got %s", source.TypeName(raw))
	}
	kind, err := argumentKind(def, path)
	if err != nil {
		return nil, err
	}
	meta, err := metadata(def, path)
	if err != nil {
		return nil, err
	}

	var arg argument.Argument
	switch kind {
	case argument.KindFlag:
		arg, err = flag(def, path, meta)
	case argument.KindChoice:
		arg, err = choice(def, path, meta)
	default:
		arg, err = b.value(def, path, meta)
	}
	if err != nil {
		return nil, err
	}
	if err := arg.Validate(); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	return arg, nil
}

func metadata(def *source.Map, path string) (argument.Meta, error) {
	var meta argument.Meta
	var err error
	if meta.Description, err = def.String("description", ""); err != nil {
		return meta, wrapConfigErr(path, err)
	}
	if meta.Group, err = def.String("group", ""); err != nil {
		return meta, wrapConfigErr(path, err)
	}
	raw, ok := def.Get("template")
	if !ok {
		return meta, nil
	}
	switch typed := raw.(type) {
	case string:
		meta.Template = argument.NewTemplate(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return meta, configErr(source.JoinPath(path, "template"), "expected strings, got %s", source.TypeName(item))
			}
			parts = append(parts, s)
		}
		meta.Template = argument.NewListTemplate(parts...)
	default:
		return meta, configErr(source.JoinPath(path, "template"), "expected string or array, got %s", source.TypeName(raw))
	}
	return meta, nil
}

func named(def *source.Map, path string) (argument.Named, error) {
	var n argument.Named
	var err error
	if n.Name, err = def.String("name", ""); err != nil {
		return n, wrapConfigErr(path, err)
	}
	sep, err := def.String("separator", "")
	if err != nil {
		return n, wrapConfigErr(path, err)
	}
	n.Separator = argument.Separator(sep)
	if n.Multi, err = def.Bool("multi", false); err != nil {
		return n, wrapConfigErr(path, err)
	}
	if n.MultiStyle, err = def.String("multi_style", ""); err != nil {
		return n, wrapConfigErr(path, err)
	}
	return n, nil
}

func flag(def *source.Map, path string, meta argument.Meta) (*argument.Flag, error) {
	if err := checkKeys(def, flagKeys, path); err != nil {
		return nil, err
	}
	f := &argument.Flag{Meta: meta}
	var err error
	if f.Flag, err = def.String("flag", ""); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if f.On, err = def.Bool("on", false); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	return f, nil
}

func choice(def *source.Map, path string, meta argument.Meta) (*argument.Choice, error) {
	if err := checkKeys(def, choiceKeys, path); err != nil {
		return nil, err
	}
	n, err := named(def, path)
	if err != nil {
		return nil, err
	}
	c := &argument.Choice{Meta: meta, Named: n}
	raw, _ := def.Get("choices")
	if c.Choices, err = scalarList(raw, source.JoinPath(path, "choices")); err != nil {
		return nil, err
	}
	if raw, ok := def.Get("selected"); ok {
		sel, err := argument.NormalizeSelection(raw)
		if err != nil {
			return nil, configErr(source.JoinPath(path, "selected"), "%v", err)
		}
		if len(sel) > 1 && !c.Multi {
			return nil, configErr(source.JoinPath(path, "selected"), "several selections require multi = true")
		}
		c.Selected = sel
	}
	return c, nil
}

func (b *builder) value(def *source.Map, path string, meta argument.Meta) (*argument.Value, error) {
	if err := checkKeys(def, valueKeys, path); err != nil {
		return nil, err
	}
	n, err := named(def, path)
	if err != nil {
		return nil, err
	}
	v := &argument.Value{Meta: meta, Named: n}
	raw, _ := def.Get("value")
	if v.Value, err = scalarList(raw, source.JoinPath(path, "value")); err != nil {
		return nil, err
	}
	if v.Password, err = def.Bool("password", false); err != nil {
		return nil, wrapConfigErr(path, err)
	}
	if v.Suggestions, err = b.suggestions(def, path); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *builder) suggestions(def *source.Map, path string) (argument.Suggestions, error) {
	raw, ok := def.Get("suggestions")
	if !ok {
		return nil, nil
	}
	p := source.JoinPath(path, "suggestions")
	switch typed := raw.(type) {
	case []any:
		list, err := scalarList(typed, p)
		if err != nil {
			return nil, err
		}
		return argument.SuggestionsList(list), nil
	case *source.Map:
		if err := checkKeys(typed, suggestKeys, p); err != nil {
			return nil, err
		}
		cmd, err := typed.String("command", "")
		if err != nil {
			return nil, wrapConfigErr(p, err)
		}
		if strings.TrimSpace(cmd) == "" {
			return nil, configErr(p, "suggestions command cannot be empty")
		}
		cache, err := typed.Bool("cache", false)
		if err != nil {
			return nil, wrapConfigErr(p, err)
		}
		return &argument.SuggestionsCommand{Command: cmd, Cache: cache, Timeout: b.opts.SuggestionsTimeout}, nil
	default:
		return nil, configErr(p, "expected array or table, got %s", source.TypeName(raw))
	}
}

// propagate pushes configuration from parent to m, then to m's arguments,
// dynamic command arguments and sub-menus. Explicit values are kept.
func propagate(m *Menu, parent Configuration) {
	m.Configuration.inherit(parent)
	cfg := m.Configuration

	inherit := func(a argument.Argument) {
		switch typed := a.(type) {
		case *argument.Choice:
			typed.Inherit(cfg.Separator, cfg.MultiStyle)
		case *argument.Value:
			typed.Inherit(cfg.Separator, cfg.MultiStyle)
		}
	}
	for _, e := range m.Arguments {
		inherit(e.Value)
	}
	for _, e := range m.Commands {
		for _, el := range e.Value.Template {
			if el.Kind == ElementArgument {
				inherit(el.Argument)
			}
		}
	}
	for _, e := range m.Menus {
		propagate(e.Value, cfg)
	}
}

// validateTree re-checks argument invariants once inherited fields are set.
func validateTree(root *Menu) error {
	var err error
	root.Walk(func(path []string, m *Menu) {
		if err != nil {
			return
		}
		prefix := menuPath(path)
		for _, e := range m.Arguments {
			if verr := e.Value.Validate(); verr != nil {
				err = wrapConfigErr(source.JoinPath(prefix, "arguments", e.Shortcut), verr)
				return
			}
		}
	})
	return err
}

func menuPath(path []string) string {
	parts := make([]string, 0, len(path)*2)
	for _, p := range path {
		parts = append(parts, "menus", p)
	}
	return source.JoinPath(parts...)
}
