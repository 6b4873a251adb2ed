// Package photo reads capture metadata out of JPEG images and writes
// geolocation metadata back into them.
//
// Reading never fails a photo outright: a missing or unreadable EXIF block
// yields a Photo with a zero capture time so the batch can report the item
// individually. Writing rebuilds only the EXIF segment of the JPEG; pixel
// data and all other segments pass through untouched.
package photo
