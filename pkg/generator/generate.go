// File: cpp-workspace-gen/pkg/generator/generate.go
package generator

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"cpp-workspace-gen/pkg/config"
	"cpp-workspace-gen/pkg/generator/deps"
	"cpp-workspace-gen/pkg/generator/sources"
	"cpp-workspace-gen/pkg/logging"
	"cpp-workspace-gen/pkg/types"
	"cpp-workspace-gen/pkg/utils"
)

// Generator builds the external section of a WORKSPACE document from a
// library checkout.
type Generator struct {
	fs       afero.Fs
	settings *config.Settings
	deps     types.DepsTable
}

// New returns a generator reading from fs. settings must have been
// validated.
func New(fs afero.Fs, settings *config.Settings, table types.DepsTable) *Generator {
	if table == nil {
		table = types.DepsTable{}
	}
	return &Generator{fs: fs, settings: settings, deps: table}
}

// Generate scans every module below the library root and returns the
// assembled document, one external per module.
func (g *Generator) Generate(ctx context.Context) (*types.Workspace, error) {
	log := logging.From(ctx)

	modules, err := sources.ListModules(g.fs, g.settings.Root)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Found %d modules in %s", len(modules), g.settings.Root)

	dangling := deps.Dangling(g.deps, modules)
	names := make([]string, 0, len(dangling))
	for name := range dangling {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Warn().Str("module", name).Strs("missing", dangling[name]).
			Msgf("depends on modules not present in the checkout: %v", dangling[name])
	}

	ws := &types.Workspace{External: make(map[string]types.ExternalRepo, len(modules))}
	for _, module := range modules {
		repo, err := g.Module(ctx, module)
		if err != nil {
			return nil, err
		}

		key := utils.Expand(g.settings.ExtPath, module)
		if _, dup := ws.External[key]; dup {
			return nil, eris.Errorf("external path %s generated twice", key)
		}
		ws.External[key] = repo
	}

	log.Info().Msgf("Generated %d externals", len(ws.External))
	return ws, nil
}

// Module builds the external descriptor of a single module.
func (g *Generator) Module(ctx context.Context, module string) (types.ExternalRepo, error) {
	log := logging.From(ctx)

	target := BaseTarget(g.settings)

	srcs, err := sources.ClassifySources(g.fs, sources.ModuleRoot(g.settings.Root, module), g.settings.SrcExts)
	if err != nil {
		return types.ExternalRepo{}, eris.Wrapf(err, "failed to classify sources of %s", module)
	}
	if len(srcs.Generic) > 0 {
		target.Srcs = srcs.Generic
	}
	if len(srcs.Linux) > 0 {
		target.Linux.Srcs = srcs.Linux
	}
	if len(srcs.Windows) > 0 {
		target.Windows.Srcs = srcs.Windows
	}

	target.Deps = deps.Attach(g.deps, module, g.settings.ExtPath)

	if srcs.Empty() {
		log.Debug().Str("module", module).Msg("no sources, header-only")
	} else {
		log.Debug().Str("module", module).
			Int(sources.Generic.String(), len(srcs.Generic)).
			Int(sources.Linux.String(), len(srcs.Linux)).
			Int(sources.Windows.String(), len(srcs.Windows)).
			Int("deps", len(target.Deps)).
			Msg("scanned")
	}

	return types.ExternalRepo{
		URL:    utils.Expand(g.settings.URLTemplate, module),
		Branch: g.settings.Branch(),
		Build:  map[string]types.BuildTarget{module: target},
	}, nil
}

// BaseTarget returns the part of a build target shared by every module.
func BaseTarget(settings *config.Settings) types.BuildTarget {
	return types.BuildTarget{
		Type:     config.TargetType,
		Hdrs:     append([]string(nil), config.HeaderGlobs...),
		Includes: []string{config.IncludeDir},
		Linux: types.PlatformOverride{
			CompileFlags: append([]string{}, settings.LinuxFlags...),
		},
		Windows: types.PlatformOverride{
			CompileFlags: append([]string{}, settings.WindowsFlags...),
		},
	}
}
