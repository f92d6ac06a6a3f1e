package domain

// BuildType identifies the toolchain used to build a workspace.
type BuildType string

// Known build types.
const (
	BuildTypeMaven  BuildType = "maven"
	BuildTypeNPM    BuildType = "npm"
	BuildTypeDocker BuildType = "docker"
	BuildTypeTar    BuildType = "tar"
)

// Marker files looked up at the workspace root.
const (
	MarkerPom         = "pom.xml"
	MarkerPackageJSON = "package.json"
	MarkerDockerfile  = "Dockerfile"
)

// BuildRule maps a set of marker files to a build type.
// A rule matches when every marker is present.
type BuildRule struct {
	Markers []string
	Type    BuildType
}

// BuildRules is the ordered rule table. The first matching rule wins and the
// last rule has no markers, so it always matches.
var BuildRules = []BuildRule{
	{Markers: []string{MarkerPom, MarkerDockerfile}, Type: BuildTypeMaven},
	{Markers: []string{MarkerPackageJSON, MarkerDockerfile}, Type: BuildTypeNPM},
	{Markers: []string{MarkerPom}, Type: BuildTypeMaven},
	{Markers: []string{MarkerPackageJSON}, Type: BuildTypeNPM},
	{Markers: []string{MarkerDockerfile}, Type: BuildTypeDocker},
	{Markers: nil, Type: BuildTypeTar},
}

// MatchBuildType returns the build type of the first rule whose markers are all
// contained in entries.
func MatchBuildType(entries map[string]struct{}) BuildType {
	for _, rule := range BuildRules {
		if rule.matches(entries) {
			return rule.Type
		}
	}
	return BuildTypeTar
}

func (r BuildRule) matches(entries map[string]struct{}) bool {
	for _, m := range r.Markers {
		if _, ok := entries[m]; !ok {
			return false
		}
	}
	return true
}

// String returns the build type name.
func (b BuildType) String() string {
	return string(b)
}
