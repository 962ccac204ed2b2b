// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestMissingId Id = iota + 1
	ManifestMalformedId
	NamespaceMissingId
	EntryPointMalformedId
	InstallerUnavailableId
	DependencyInstallFailedId
	ArchiveWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestMissingIssue = &Issue{
		id: ManifestMissingId,
		mdMsg: `
# No build manifest found!

We searched the project root for a build manifest but couldn't find one.

## Accepted file names (in order of precedence):
1. build
2. build.yml
3. build.yaml

## Things you can try:
- Create a minimal manifest in your project root:
~~~yaml
zapper:
  entry_point: "mypackage.cli:main"
~~~

- Or point zapper at the right directory:
~~~
$ zapper /path/to/your/project
~~~`,
	}

	manifestMalformedIssue = &Issue{
		id: ManifestMalformedId,
		mdMsg: `
# Failed to parse the build manifest!

Your build manifest contains syntax errors or an unexpected document shape.

## Common issues:
- Invalid YAML syntax (bad indentation, unbalanced quotes)
- The ` + "`zapper`" + ` key holding a plain scalar instead of a mapping or list
- A target entry that is not a mapping

## Things you can try:
- Check the error message above for the offending line
- Run with verbose mode for more details:
~~~
$ zapper --verbose /path/to/your/project
~~~

## Example of a valid manifest:
~~~yaml
zapper:
  - entry_point: "mypackage.cli:main"
    app_name: "mytool"
    requirements:
      - "requests==2.31.0"
  - entry_point: "mypackage.worker:run"
    app_name: "myworker"
~~~`,
	}

	namespaceMissingIssue = &Issue{
		id: NamespaceMissingId,
		mdMsg: `
# Manifest has no zapper section!

The build manifest parsed fine, but it has no top-level ` + "`zapper`" + ` key,
so there is nothing to build.

## Things you can try:
- Add a zapper section to the manifest:
~~~yaml
zapper:
  entry_point: "mypackage.cli:main"
~~~

- If the file serves another tool too, both namespaces can coexist:
~~~yaml
sometool:
  setting: value

zapper:
  entry_point: "mypackage.cli:main"
~~~`,
	}

	entryPointMalformedIssue = &Issue{
		id: EntryPointMalformedId,
		mdMsg: `
# Malformed entry point!

A target's ` + "`entry_point`" + ` could not be parsed. Other targets in the
manifest still build.

## Expected form:
~~~
module.path:callable extra,args
~~~

- The part before ` + "`:`" + ` is the dotted module path (required)
- The part after ` + "`:`" + ` is the callable name (required)
- Optional comma-separated literal arguments follow after whitespace

## Examples:
~~~yaml
entry_point: "mypackage.cli:main"
entry_point: "mypackage.cli:main serve,--port=8080"
~~~`,
	}

	installerUnavailableIssue = &Issue{
		id: InstallerUnavailableId,
		mdMsg: `
# pip not found!

A target declares dependencies, but no pip executable could be located, so
its dependencies cannot be vendored. Targets without dependencies still
build.

## Things you can try:
- Install pip:
~~~
$ python -m ensurepip --upgrade
~~~

- Or point zapper at a specific installer in your config:
~~~cue
installer: "/opt/python/bin/pip3"
~~~

- Or drop the ` + "`requirements`" + ` / ` + "`requirements_txt`" + ` fields if the
  project is self-contained`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency install failed!

pip exited with an error while vendoring a target's dependencies. The
installer's own output above has the specifics.

## Common causes:
- A requirement specifier that matches no published package
- Version constraints that cannot be satisfied
- No network access to the package index

## Things you can try:
- Install the same set manually to reproduce:
~~~
$ pip install --isolated --target=/tmp/vendor <your specifiers>
~~~

- Pin looser versions in ` + "`requirements`" + ` or the requirements file`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Failed to write the archive!

The build pipeline finished but the archive could not be written to its
destination. No partial archive is left behind.

## Common causes:
- Destination directory is not writable
- Disk full
- A source file disappeared mid-build

## Things you can try:
- Check permissions on the destination directory
- Pick an explicit destination you own:
~~~
$ zapper /path/to/project /tmp/out/
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the zapper configuration file.

## Configuration file locations:
- Linux: ~/.config/zapper/config.cue
- macOS: ~/Library/Application Support/zapper/config.cue
- Windows: %APPDATA%\zapper\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ zapper config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
installer: "pip3"
shebang: "#!/usr/bin/env python3"
default_ignore: ["venv", "env", ".git"]

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		manifestMissingIssue.Id():         manifestMissingIssue,
		manifestMalformedIssue.Id():       manifestMalformedIssue,
		namespaceMissingIssue.Id():        namespaceMissingIssue,
		entryPointMalformedIssue.Id():     entryPointMalformedIssue,
		installerUnavailableIssue.Id():    installerUnavailableIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
		archiveWriteFailedIssue.Id():      archiveWriteFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
