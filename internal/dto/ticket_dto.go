package dto

// TicketForm carries the create/edit ticket fields. The image arrives as a
// separate multipart part; DeleteImage is the explicit removal flag used on
// edit.
type TicketForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=128"`
	Author      string `form:"author" json:"author" validate:"max=128"`
	Description string `form:"description" json:"description" validate:"max=2048"`
	DeleteImage string `form:"delete_existing_image" json:"delete_existing_image"`
}

// WantsImageDeleted reports whether the edit form asked to drop the stored
// image.
func (f *TicketForm) WantsImageDeleted() bool {
	return f.DeleteImage == "true"
}
