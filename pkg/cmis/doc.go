// Package cmis holds the typed object model shared by the browser binding
// client: type and property definitions, property data, object graphs,
// listings, repository information and the error taxonomy.
//
// Files:
//   - enums.go: closed enumerations with their wire tags
//   - definitions.go: TypeDefinition, PropertyDefinition, Choice
//   - properties.go: PropertyData, Properties and value type rules
//   - extension.go: ExtensionElement trees
//   - object.go: ObjectData and its sub-entities
//   - lists.go: paged listings and containers
//   - repository.go: RepositoryInfo and capabilities
//   - ids.go: well-known property ids and allowable actions
//   - errors.go: error kinds
package cmis
