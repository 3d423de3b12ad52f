// Package browser implements the CMIS browser binding services on top of
// the transport client and the JSON converters.
//
// Structure:
//
//	binding.go     - Binding, construction and request helpers
//	urlcache.go    - repository and root folder URLs per repository
//	params.go      - selectors, query parameters and operation options
//	repository.go  - repository infos and type definitions
//	navigation.go  - children, descendants, parents, checked out documents
//	object.go      - object reads, creation, update and deletion
//	acl.go         - ACL, policy and query services
package browser
