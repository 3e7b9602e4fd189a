package container

// Extension is the canonical container file extension. Build output paths
// are forced onto it so every published container is recognizable.
const Extension = ".aifm"

const (
	payloadDir   = "payload/"
	metadataDir  = "metadata/"
	manifestName = "manifest.json"
	readmeName   = "README.txt"
)

// MetadataKind names one of the closed set of informative documents a
// container may carry under metadata/. Metadata is never hashed; editing or
// removing it does not affect the verification verdict.
type MetadataKind string

const (
	KindPersona     MetadataKind = "persona"
	KindDeclaration MetadataKind = "declaration"
	KindPrompt      MetadataKind = "prompt"
	KindLyrics      MetadataKind = "lyrics"
)

// MetadataKinds returns all recognized metadata kinds in archive order.
func MetadataKinds() []MetadataKind {
	return []MetadataKind{KindPersona, KindDeclaration, KindPrompt, KindLyrics}
}

func (k MetadataKind) entryName() string {
	return metadataDir + string(k) + ".txt"
}
