// controllers/package.go
package controllers

import (
	"errors"
	"net/http"

	"salon-admin-backend/models"
	"salon-admin-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageController struct {
	DB *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db}
}

type PackageInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Type  string  `json:"type" binding:"required"`
}

func (pc *PackageController) CreatePackage(c *gin.Context) {
	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidPackageType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package type")
		return
	}

	pkg := models.Package{
		Name:  input.Name,
		Price: input.Price,
		Type:  input.Type,
	}
	if err := pc.DB.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create package")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Package created successfully", "package": pkg})
}

func (pc *PackageController) GetPackages(c *gin.Context) {
	var packages []models.Package
	if err := pc.DB.Preload("Services").Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (pc *PackageController) GetPackage(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var pkg models.Package
	if err := pc.DB.Preload("Services").First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pkg)
}

func (pc *PackageController) UpdatePackage(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidPackageType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package type")
		return
	}

	var pkg models.Package
	if err := pc.DB.First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pkg.Name = input.Name
	pkg.Price = input.Price
	pkg.Type = input.Type
	if err := pc.DB.Save(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package updated successfully", "package": pkg})
}

func (pc *PackageController) DeletePackage(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	result := pc.DB.Delete(&models.Package{}, "id = ?", packageID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}

type SetPackageServicesInput struct {
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required"`
}

// SetPackageServices replaces the set of catalog services a package bundles.
func (pc *PackageController) SetPackageServices(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input SetPackageServicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pkg models.Package
	if err := pc.DB.First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var selectedServices []models.PackageService
	if len(input.ServiceIDs) > 0 {
		if err := pc.DB.Where("id IN ?", input.ServiceIDs).Find(&selectedServices).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if len(selectedServices) != len(input.ServiceIDs) {
			utils.RespondWithError(c, http.StatusBadRequest, "Some services were not found")
			return
		}
	}

	if err := pc.DB.Model(&pkg).Association("Services").Replace(selectedServices); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package services updated successfully"})
}
