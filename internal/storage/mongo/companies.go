package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

var companySort = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) CreateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	owner, err := objectID(company.UserID)
	if err != nil {
		return models.Company{}, err
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = s.stamp()
	}
	doc := companyDoc{
		ID:                bson.NewObjectID(),
		Title:             company.Title,
		AboutUs:           company.AboutUs,
		NumberOfEmployees: company.NumberOfEmployees,
		FoundedDate:       company.FoundedDate,
		UserID:            owner,
		CreatedAt:         company.CreatedAt,
	}
	if _, err := s.companies.InsertOne(ctx, doc); err != nil {
		return models.Company{}, mapErr(err)
	}
	return doc.model(), nil
}

func (s *Store) GetCompany(ctx context.Context, id string) (models.Company, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Company{}, err
	}
	return findOne(ctx, s.companies, bson.D{{Key: "_id", Value: oid}}, companyDoc.model)
}

func (s *Store) ListCompanies(ctx context.Context, filter storage.CompanyFilter, page pagination.Request) (pagination.Result[models.Company], error) {
	f, err := filterIDs(bson.D{}, "user_id", filter.UserID)
	if err != nil {
		return pagination.Result[models.Company]{}, err
	}
	return listPage[companyDoc, models.Company](ctx, s.companies, f, companySort, page, companyDoc.model)
}

func (s *Store) UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) (models.Company, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Company{}, err
	}
	set := bson.D{}
	set = setString(set, "title", patch.Title)
	set = setString(set, "about_us", patch.AboutUs)
	set = setString(set, "founded_date", patch.FoundedDate)
	if patch.NumberOfEmployees != nil {
		set = append(set, bson.E{Key: "number_of_employees", Value: *patch.NumberOfEmployees})
	}
	if len(set) == 0 {
		return s.GetCompany(ctx, id)
	}
	return updateOne(ctx, s.companies, oid, bson.D{{Key: "$set", Value: set}}, companyDoc.model)
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return deleteOne(ctx, s.companies, id)
}
