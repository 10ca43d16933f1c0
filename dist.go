package allure

// Distribution coordinates of the allure commandline.
const (
	ToolName = "allure"

	// PinnedVersion is the version provisioned unless the catalog advertises a newer release.
	PinnedVersion = "2.13.8"
	// OverrideVersion replaces PinnedVersion once it's outdated.
	OverrideVersion = "2.14.1"

	CatalogURL       = "https://repo1.maven.org/maven2/io/qameta/allure/allure-commandline/maven-metadata.xml"
	ArchiveURLFormat = "https://repo1.maven.org/maven2/io/qameta/allure/allure-commandline/{{.Version}}/allure-commandline-{{.Version}}.zip"

	// ReportDir is where generated reports are written, next to the cache directory.
	ReportDir = "allure-report"
)
