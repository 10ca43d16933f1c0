// Package binary provisions an externally distributed tool into a local
// cache directory so it can be executed.
//
// At the core, a [Binary] names the tool, the version it is pinned to and
// an [Origin] that knows where versions are listed and downloaded from.
//
// Provisioning works in a few steps:
//   - [Locate] computes where the launcher script is expected to be; if the file is
//     already there nothing else happens
//   - the origin catalog is read and the [Policy] picks the version to download
//   - the archive is fetched, written to the cache with [Persist] and unpacked with
//     [Archive.Extract]
//
// Only the presence of the launcher script is checked, an interrupted extraction
// is not detected.
//
// example usage
//
//	tool, err := binary.New(
//		"allure",
//		"2.13.8",
//		binary.RemoteArchive(
//			"https://repo1.maven.org/maven2/io/qameta/allure/allure-commandline/maven-metadata.xml",
//			"https://repo1.maven.org/maven2/io/qameta/allure/allure-commandline/{{.Version}}/allure-commandline-{{.Version}}.zip",
//			nil,
//		),
//		binary.WithCacheRoot(".dist"),
//		binary.WithOverrideVersion("2.14.1"),
//	)
//
//	// download and extract if necessary
//	path, err := tool.Ensure(ctx)
//
//	// use via the runner
//	stdout, stderr, err := allure.Capture(ctx, path, allure.WithArgs("--help"))
package binary
