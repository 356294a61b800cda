package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/pages"
)

// pathFlags select a position in the organization → location → charger →
// connector chain.
type pathFlags struct {
	values [pages.LevelConnector + 1]string
}

//nolint:gochecknoglobals // Flag names per chain level.
var pathFlagNames = [pages.LevelConnector + 1]string{"org", "location", "charger", "connector"}

// bind registers the flags of the first depth levels.
func (p *pathFlags) bind(cmd *cobra.Command, depth int) {
	usage := [...]string{"organization id", "location id", "charger id", "connector id"}
	for k := 0; k < depth; k++ {
		cmd.Flags().StringVar(&p.values[k], pathFlagNames[k], "", usage[k])
	}
}

// path returns the selections of the first depth levels.
func (p *pathFlags) path(depth int) []string {
	return append([]string{}, p.values[:depth]...)
}

// require fails when any of the named levels is unset.
func (p *pathFlags) require(levels ...int) error {
	for _, k := range levels {
		if p.values[k] == "" {
			return fmt.Errorf("--%s is required", pathFlagNames[k])
		}
	}
	return nil
}

// fieldFlags binds one string flag per editable page field. Only flags set on
// the command line are applied, so an update keeps the loaded values of
// every other field.
type fieldFlags struct {
	values map[string]*string
}

// flagName turns a field key such as "max_session_time" into
// "max-session-time". Keys are lower-cased.
func flagName(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

// bindFields registers a flag for every field of page.
func bindFields(cmd *cobra.Command, page pages.Page) *fieldFlags {
	ff := &fieldFlags{values: map[string]*string{}}
	for _, f := range page.Fields() {
		v := new(string)
		cmd.Flags().StringVar(v, flagName(f.Key), "", f.Label)
		ff.values[f.Key] = v
	}
	return ff
}

// apply sets the fields whose flags were given.
func (ff *fieldFlags) apply(cmd *cobra.Command, fields []pages.Field) error {
	for _, f := range fields {
		v, ok := ff.values[f.Key]
		if !ok || !cmd.Flags().Changed(flagName(f.Key)) {
			continue
		}
		if err := f.Set(*v); err != nil {
			return fmt.Errorf("--%s: %w", flagName(f.Key), err)
		}
	}
	return nil
}
