package model

import "talentcrm/internal/platform/docstore"

func (r Role) Collection() string {
	return docstore.CollectionRoles
}

func (r Role) IDField() string {
	return "role_id"
}

func (r Role) RecordID() int64 {
	return r.RoleID
}

func (r *Role) SetRecordID(id int64) {
	r.RoleID = id
}

func (p Person) Collection() string {
	return docstore.CollectionPersons
}

func (p Person) IDField() string {
	return "person_id"
}

func (p Person) RecordID() int64 {
	return p.PersonID
}

func (p *Person) SetRecordID(id int64) {
	p.PersonID = id
}

func (u User) Collection() string {
	return docstore.CollectionUsers
}

func (u User) IDField() string {
	return "user_id"
}

func (u User) RecordID() int64 {
	return u.UserID
}

func (u *User) SetRecordID(id int64) {
	u.UserID = id
}

func (e Employee) Collection() string {
	return docstore.CollectionEmployees
}

func (e Employee) IDField() string {
	return "employee_id"
}

func (e Employee) RecordID() int64 {
	return e.EmployeeID
}

func (e *Employee) SetRecordID(id int64) {
	e.EmployeeID = id
}

func (c Client) Collection() string {
	return docstore.CollectionClients
}

func (c Client) IDField() string {
	return "client_id"
}

func (c Client) RecordID() int64 {
	return c.ClientID
}

func (c *Client) SetRecordID(id int64) {
	c.ClientID = id
}

func (s SocialMediaAccount) Collection() string {
	return docstore.CollectionSocialMediaAccounts
}

func (s SocialMediaAccount) IDField() string {
	return "social_media_id"
}

func (s SocialMediaAccount) RecordID() int64 {
	return s.SocialMediaID
}

func (s *SocialMediaAccount) SetRecordID(id int64) {
	s.SocialMediaID = id
}

func (b Brand) Collection() string {
	return docstore.CollectionBrands
}

func (b Brand) IDField() string {
	return "brand_id"
}

func (b Brand) RecordID() int64 {
	return b.BrandID
}

func (b *Brand) SetRecordID(id int64) {
	b.BrandID = id
}

func (b BrandRepresentative) Collection() string {
	return docstore.CollectionBrandRepresentatives
}

func (b BrandRepresentative) IDField() string {
	return "brand_rep_id"
}

func (b BrandRepresentative) RecordID() int64 {
	return b.BrandRepID
}

func (b *BrandRepresentative) SetRecordID(id int64) {
	b.BrandRepID = id
}

func (d Deal) Collection() string {
	return docstore.CollectionDeals
}

func (d Deal) IDField() string {
	return "deal_id"
}

func (d Deal) RecordID() int64 {
	return d.DealID
}

func (d *Deal) SetRecordID(id int64) {
	d.DealID = id
}

func (c Contract) Collection() string {
	return docstore.CollectionContracts
}

func (c Contract) IDField() string {
	return "contract_id"
}

func (c Contract) RecordID() int64 {
	return c.ContractID
}

func (c *Contract) SetRecordID(id int64) {
	c.ContractID = id
}
