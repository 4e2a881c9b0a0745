// Package models defines the domain entities of the lettings site and their persistence interfaces.
//
// Entities:
//   - [Address] : A physical street address owned by exactly one letting
//   - [Letting] : A rental property listing with its owned [Address]
//   - [User] : An externally owned account, identified on the site by its username
//   - [Profile] : Per-user site data (favorite city) attached one-to-one to a [User]
//
// All entities implement [Model], providing validation of the declared field bounds and a human readable string form.
// The [Repository] interface defines the create/get/list operations shared by the SQLite stores.
package models
