package models

/*
PhotoUpdate is a partial update. Nil fields are left alone. Location
can't express "remove" with a nil pointer, so ClearLocation does that.
*/
type PhotoUpdate struct {
	Title         *string
	Description   *string
	ImageURL      *string
	ThumbnailURL  *string
	Location      *Location
	ClearLocation bool
	Tags          *[]string
	Featured      *bool
}

/*
Apply returns a copy of photo with the update merged in. ID and
CreatedAt are never touched.
*/
func (u PhotoUpdate) Apply(photo *Photo) *Photo {
	result := photo.Clone()

	if u.Title != nil {
		result.Title = *u.Title
	}

	if u.Description != nil {
		result.Description = *u.Description
	}

	if u.ImageURL != nil {
		result.ImageURL = *u.ImageURL
	}

	if u.ThumbnailURL != nil {
		result.ThumbnailURL = *u.ThumbnailURL
	}

	if u.ClearLocation {
		result.Location = nil
	} else if u.Location != nil {
		loc := *u.Location
		result.Location = &loc
	}

	if u.Tags != nil {
		if len(*u.Tags) == 0 {
			result.Tags = nil
		} else {
			result.Tags = append([]string{}, (*u.Tags)...)
		}
	}

	if u.Featured != nil {
		result.Featured = *u.Featured
	}

	return result
}

/*
FullUpdate builds an update that replaces every editable field with
the values in n. This is what the back-office form submits.
*/
func FullUpdate(n NewPhoto) PhotoUpdate {
	tags := append([]string{}, n.Tags...)

	result := PhotoUpdate{
		Title:         &n.Title,
		Description:   &n.Description,
		ImageURL:      &n.ImageURL,
		ThumbnailURL:  &n.ThumbnailURL,
		Location:      n.Location,
		ClearLocation: n.Location == nil,
		Tags:          &tags,
		Featured:      &n.Featured,
	}

	return result
}
