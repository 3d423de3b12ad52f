// Package convert turns browser binding JSON into the cmis object model.
//
// Files:
//   - json.go: order-preserving JSON decoding (Object)
//   - value.go: property value codec (DecodeValue, EncodeValue, CheckValue)
//   - extension.go: unknown wire keys to extension elements
//   - properties.go: explicit and succinct property tables
//   - object.go: objects, ACLs, allowable actions, renditions
//   - listing.go: object pages, folder children, trees, parents
//   - typedef.go: type and property definitions
//   - repository.go: repository infos and capabilities
//   - keys.go: wire keys modelled by each entity
//
// Conversions are pure: the only collaborator is the TypeResolver used by
// succinct properties.
package convert
