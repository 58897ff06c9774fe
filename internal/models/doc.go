// Package models defines the core domain models for DAOjo savings circles.
//
// # Models
//
//   - Circle: a group of up to three members sharing a treasury
//   - FundingRequest: a member's proposal to withdraw from the treasury
//   - Roster: fixed-capacity ordered slots used for members and voters
//   - Account: a token account (member wallet or circle treasury)
//   - Transfer: an immutable record of funds moving between accounts
//   - User: a registered account whose ID is the caller identity
//
// # Design Principles
//
// 1. **Fixed slots**: membership and voting use a three-slot Roster, never a growable list
// 2. **Derived identity**: circle, request and treasury IDs are pure functions of domain data
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
// 4. **Integer amounts**: balances are uint64 in the smallest token unit
package models
